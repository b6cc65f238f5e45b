package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Ошибки хранилища. Обработчики сопоставляют их с HTTP-статусами через errors.Is.
var (
	ErrNotFound      = errors.New("запись не найдена")
	ErrEmailTaken    = errors.New("email уже существует")
	ErrUsernameTaken = errors.New("username уже занят")
)

// uniqueViolation - код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// mapUniqueViolation переводит ошибку duplicate key в доменную ошибку.
// БД - последняя линия защиты от гонки check-then-create при регистрации.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return nil
	}

	if strings.Contains(pqErr.Constraint, "email") {
		return ErrEmailTaken
	}
	if strings.Contains(pqErr.Constraint, "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
