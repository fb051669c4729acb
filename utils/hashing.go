package utils

import (
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Password hashes include an application-level pepper on top of bcrypt's
// per-hash salt. Must match the identity service's scheme.

func HashPassword(password string) (string, error) {
	pepper := viper.GetString("PASSWORD_PEPPER")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password+pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	pepper := viper.GetString("PASSWORD_PEPPER")
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+pepper))
	return err == nil
}
