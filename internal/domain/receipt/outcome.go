package receipt

// Outcome is the tagged terminal result of the delivery cascade
type Outcome string

const (
	// OutcomeNativeShareSucceeded means the gateway accepted the artifact
	// (and any extra files) together with the caption
	OutcomeNativeShareSucceeded Outcome = "native_share_succeeded"
	// OutcomeNativeShareCancelled means the user aborted the share. Not an
	// error and never a trigger for fallback tiers.
	OutcomeNativeShareCancelled Outcome = "native_share_cancelled"
	// OutcomeDownloadedAndDeepLinked means the artifact was saved to the
	// outbox and a prefilled deep link was produced; attaching the file is up
	// to the user
	OutcomeDownloadedAndDeepLinked Outcome = "downloaded_and_deep_linked"
	// OutcomeTextOnlyDeepLinked means capture failed and only the caption
	// text travels through the deep link
	OutcomeTextOnlyDeepLinked Outcome = "text_only_deep_linked"
	// OutcomeFailed means no tier could run
	OutcomeFailed Outcome = "failed"
)

// Delivery carries the outcome plus whatever the reached tier produced
type Delivery struct {
	Outcome Outcome `json:"outcome"`
	// DeepLink is set for the download and text-only tiers
	DeepLink string `json:"deep_link,omitempty"`
	// SavedPath is set when the download tier wrote the artifact to the outbox
	SavedPath string `json:"saved_path,omitempty"`
	// Reason is set only for OutcomeFailed
	Reason string `json:"reason,omitempty"`
}
