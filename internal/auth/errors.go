// Package auth は認証・認可機能を提供します。
package auth

// エラーコード一覧。ハンドラーがHTTPステータスへ対応付けます。
const (
	CodeAlreadyRegistered     = "ALREADY_REGISTERED"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeTokenMalformed        = "TOKEN_MALFORMED"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenInvalidSignature = "TOKEN_INVALID_SIGNATURE"
)

// Error は認証処理の失敗を表すエラー値です。
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
