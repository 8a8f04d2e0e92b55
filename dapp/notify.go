package dapp

// NoticeKind is the severity of a notification
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// User-facing notification messages
const (
	MsgSubmitted    = "Transaction submitted..."
	MsgSent         = "Transaction sent"
	MsgRejected     = "Transaction rejected by user"
	MsgReverted     = "Transaction reverted"
	MsgFailed       = "Transaction failed"
	MsgCopied       = "Address copied"
	MsgInvalidInput = "Invalid input value"
	MsgWrongNetwork = "Wrong network"
)

// Notification is a discrete (kind, message) event for the display layer
type Notification struct {
	Kind    NoticeKind
	Message string
}

// IsZero reports whether n carries nothing to show
func (n Notification) IsZero() bool { return n.Message == "" }

func Info(msg string) Notification    { return Notification{Kind: NoticeInfo, Message: msg} }
func Success(msg string) Notification { return Notification{Kind: NoticeSuccess, Message: msg} }
func Failure(msg string) Notification { return Notification{Kind: NoticeError, Message: msg} }
