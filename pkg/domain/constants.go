package domain

// Element IDs the host document must expose.
const (
	FormID          = "convertForm"
	InputID         = "userInput"
	HistoryButtonID = "historyButton"
	ClearButtonID   = "clearButton"
	ResultAreaID    = "resultArea"
	HistoryAreaID   = "historyArea"

	// WindowID addresses the document itself for lifecycle events.
	WindowID = "window"
)

// Style classes used to mark error and placeholder text.
const (
	ClassDanger = "text-danger"
	ClassMuted  = "text-muted"
)

// Wire field names of the conversion API.
const (
	FieldInputString = "input_string"
	FieldOutput      = "output"
	FieldResult      = "result"
	FieldDetail      = "detail"
	FieldHistory     = "history"
	FieldInput       = "input"
)

// Route paths of the conversion API, relative to its base URL.
const (
	RouteConvert = "/api/convert"
	RouteHistory = "/api/history"
)

// DefaultAPIURL is where the conversion API listens unless configured otherwise.
const DefaultAPIURL = "http://127.0.0.1:8888"
