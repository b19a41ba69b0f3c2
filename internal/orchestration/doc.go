// Package orchestration coordinates concurrent execution of sequence generators
// and cross-checks their output. It decouples business logic from presentation
// via the ProgressReporter and ResultPresenter interfaces.
package orchestration
