// AngelaMos | 2026
// flash.go

package session

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-time notice that survives a redirect.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}
