package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID создает короткий случайный ID для одноразовых токенов
// (подтверждения разрушительных действий и прочая мелочь)
func GenerateID() string {
	var b [8]byte // 16 символов hex
	if _, err := rand.Read(b[:]); err != nil {
		panic("cannot generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
