package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"

	"taskboard-go/internal/models"
	"taskboard-go/internal/repository"
)

// ErrInvalidCredentials dikembalikan baik ketika akun tidak ada maupun ketika
// password salah. Satu error generik supaya tidak bisa dipakai untuk
// enumerasi akun.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticate memverifikasi pasangan (identifier, password). Identifier bisa
// berupa email atau alias username legacy (sama dengan email pasca migrasi).
func Authenticate(db *sql.DB, identifier, rawPassword string) (models.User, error) {
	user, err := repository.FindUserByEmail(db, identifier)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !repository.VerifyPassword(db, user.ID, rawPassword) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// AuthenticateExternal menerima klaim email dari verifier eksternal (OAuth).
// Jika user dengan email tersebut belum ada, dibuatkan akun dengan password
// lokal acak yang tidak bisa dipakai login. Idempoten per email.
func AuthenticateExternal(db *sql.DB, claimEmail string) (models.User, error) {
	user, err := repository.FindUserByEmail(db, claimEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return models.User{}, err
	}
	user, err = repository.CreateUser(db, claimEmail, hex.EncodeToString(buf))
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Insert bersamaan dari request lain; ambil baris yang sudah ada.
		return repository.FindUserByEmail(db, claimEmail)
	}
	return user, err
}
