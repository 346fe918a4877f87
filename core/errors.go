package core

import "errors"

var (
	ErrTemplateNotFound = errors.New("gourmet: template not found")
	ErrInvalidPort      = errors.New("gourmet: invalid port")
)

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}
