package pipeline

// TranslationStatus is the terminal state of a file translation.
type TranslationStatus string

const (
	TranslationStatusSuccess TranslationStatus = "Success"
	TranslationStatusFailure TranslationStatus = "Failure"
	TranslationStatusSkipped TranslationStatus = "Skipped"
)

// TranslationResult describes one file run.
type TranslationResult struct {
	Status     TranslationStatus
	SourcePath string
	OutputPath string
	Units      int
	Batches    int
	// Reason explains a skip.
	Reason string
}
