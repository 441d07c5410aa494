// Package users はユーザー情報の永続化レイヤーを提供します。
package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User は登録済みユーザーを表します。
// Password には bcrypt でハッシュ化された文字列のみを保存し、
// 平文のパスワードは決して永続化しません。
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}
