package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword は平文パスワードから bcrypt ハッシュを生成します。
// ソルトと算出パラメータはハッシュ文字列自体に埋め込まれます。
// bcrypt は入力を72バイトで打ち切る制約があります。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードを保存済みハッシュと照合します。
// 比較は定数時間で行われます。ハッシュが壊れている場合も panic せず
// 単に不一致として false を返します。
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
