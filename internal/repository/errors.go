package repository

import "errors"

var ErrNotFound = errors.New("запись не найдена")

// ErrDuplicate - нарушение уникальности (email пользователя)
var ErrDuplicate = errors.New("запись с таким значением уже существует")
