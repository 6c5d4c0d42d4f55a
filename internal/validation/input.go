package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxMeetupTimeLength  = 100
	MaxMeetupPlaceLength = 200
	MaxNotesLength       = 500
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateMeetupTime проверяет время встречи.
func ValidateMeetupTime(meetupTime string) error {
	if err := ValidateNonEmpty("время встречи", meetupTime); err != nil {
		return err
	}
	return ValidateLength("время встречи", strings.TrimSpace(meetupTime), 0, MaxMeetupTimeLength)
}

// ValidateMeetupPlace проверяет место встречи.
func ValidateMeetupPlace(meetupPlace string) error {
	if err := ValidateNonEmpty("место встречи", meetupPlace); err != nil {
		return err
	}
	return ValidateLength("место встречи", strings.TrimSpace(meetupPlace), 0, MaxMeetupPlaceLength)
}

// ValidateNotes проверяет комментарий к брони. Пустой комментарий допустим.
func ValidateNotes(notes string) error {
	return ValidateLength("комментарий", strings.TrimSpace(notes), 0, MaxNotesLength)
}
