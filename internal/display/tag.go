package display

// Tag is the style hint a UI attaches to a label (badge colour and the like).
type Tag string

const (
	TagInfo          Tag = "info"
	TagSuccess       Tag = "success"
	TagSuccessStrong Tag = "success-strong"
	TagWarning       Tag = "warning"
	TagDanger        Tag = "danger"
	TagNeutral       Tag = "neutral"
)

type Label struct {
	Text string `json:"text"`
	Tag  Tag    `json:"tag"`
}
