package users

import (
	"context"
	"errors"
)

// ErrDuplicate はメールアドレスまたはユーザー名の一意制約に違反したことを表します。
// 事前チェックをすり抜けた同時登録はストアの一意インデックスで検出され、
// このエラーに正規化されます。
var ErrDuplicate = errors.New("users: duplicate email or username")

// Store はユーザーストアが実装するインターフェースです。
// 見つからない場合は (nil, nil) を返します。
type Store interface {
	// FindByEmail はメールアドレスでユーザーを検索します。
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByEmailOrUsername はメールアドレスまたはユーザー名のいずれかが
	// 一致するユーザーを検索します。登録時の重複チェックに使用します。
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)

	// Insert は新規ユーザーを保存し、生成されたIDを返します。
	// 一意制約に違反した場合は ErrDuplicate を返します。
	Insert(ctx context.Context, user *User) (string, error)
}
