package model

// Fixed callback data of the menu buttons. News navigation buttons use the
// pagination.Callback codec instead.
const (
	CallbackMainMenu      = "cmd:menu"
	CallbackSettings      = "cmd:settings"
	CallbackHelp          = "cmd:help"
	CallbackPaginationOn  = "pref:on"
	CallbackPaginationOff = "pref:off"

	sourceCallbackPrefix = "src:"
)

// SourceCallback is the callback data of a source menu button.
func SourceCallback(code string) string { return sourceCallbackPrefix + code }
