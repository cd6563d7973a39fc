package model

import (
	"errors"
	"net/http"
)

// 业务错误类别
const (
	ErrKindValidation   = "validation"
	ErrKindSelfAction   = "self_action"
	ErrKindNotFound     = "not_found"
	ErrKindConflict     = "conflict"
	ErrKindForbidden    = "forbidden"
	ErrKindInvalidState = "invalid_state"
)

// BizError 业务错误，携带类别用于HTTP状态码映射
type BizError struct {
	Kind    string
	Message string
}

// Error .
func (e *BizError) Error() string {
	return e.Message
}

// NewValidationError 参数校验错误
func NewValidationError(message string) error {
	return &BizError{Kind: ErrKindValidation, Message: message}
}

// NewSelfActionError 对自己操作错误
func NewSelfActionError(message string) error {
	return &BizError{Kind: ErrKindSelfAction, Message: message}
}

// NewNotFoundError 资源不存在错误
func NewNotFoundError(message string) error {
	return &BizError{Kind: ErrKindNotFound, Message: message}
}

// NewConflictError 状态冲突错误
func NewConflictError(message string) error {
	return &BizError{Kind: ErrKindConflict, Message: message}
}

// NewForbiddenError 无权操作错误
func NewForbiddenError(message string) error {
	return &BizError{Kind: ErrKindForbidden, Message: message}
}

// NewInvalidStateError 非法状态转换错误
func NewInvalidStateError(message string) error {
	return &BizError{Kind: ErrKindInvalidState, Message: message}
}

// errKind 提取业务错误类别
func errKind(err error) string {
	var bizErr *BizError
	if errors.As(err, &bizErr) {
		return bizErr.Kind
	}
	return ""
}

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool {
	return errKind(err) == ErrKindNotFound
}

// IsConflict 判断是否为状态冲突错误
func IsConflict(err error) bool {
	return errKind(err) == ErrKindConflict
}

// IsForbidden 判断是否为无权操作错误
func IsForbidden(err error) bool {
	return errKind(err) == ErrKindForbidden
}

// IsInvalidState 判断是否为非法状态转换错误
func IsInvalidState(err error) bool {
	return errKind(err) == ErrKindInvalidState
}

// IsSelfAction 判断是否为对自己操作错误
func IsSelfAction(err error) bool {
	return errKind(err) == ErrKindSelfAction
}

// IsValidation 判断是否为参数校验错误
func IsValidation(err error) bool {
	return errKind(err) == ErrKindValidation
}

// HTTPStatus 业务错误到HTTP状态码的映射
func HTTPStatus(err error) int {
	switch errKind(err) {
	case ErrKindValidation, ErrKindSelfAction:
		return http.StatusBadRequest
	case ErrKindForbidden:
		return http.StatusForbidden
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	case ErrKindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
