package utils

import (
  "golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input beyond 72 bytes; truncate explicitly so hashing and
// verification agree on what was hashed.
const maxPasswordBytes = 72

func HashPassword(password string) (string, error) {
  raw := []byte(password)
  if len(raw) > maxPasswordBytes {
    raw = raw[:maxPasswordBytes]
  }
  hashed, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
  if err != nil {
    return "", err
  }
  return string(hashed), nil
}

func VerifyPassword(password, hash string) bool {
  raw := []byte(password)
  if len(raw) > maxPasswordBytes {
    raw = raw[:maxPasswordBytes]
  }
  return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}
