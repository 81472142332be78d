package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator 领域校验（纯业务规则，不依赖基础设施）
type Validator struct{}

// NewValidator 创建领域校验器
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID ID 必须为正整数
func (v *Validator) ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer, got %d", ErrValidation, id)
	}
	return nil
}

// ValidateContent 内容非空白且不超过 MaxTextLength 个字符，优先级必填
func (v *Validator) ValidateContent(text string, priority Priority) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text must not be blank", ErrValidation)
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("%w: text must be at most %d characters, got %d", ErrValidation, MaxTextLength, n)
	}
	if priority == 0 {
		return fmt.Errorf("%w: priority is required", ErrValidation)
	}
	if !priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %d", ErrValidation, int(priority))
	}
	return nil
}

// ValidateItem 校验待保存的实体
func (v *Validator) ValidateItem(item *TodoItem) error {
	if item == nil {
		return fmt.Errorf("%w: todo is required", ErrValidation)
	}
	return v.ValidateContent(item.Text, item.Priority)
}
