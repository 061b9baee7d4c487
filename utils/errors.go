// utils/errors.go
package utils

import "errors"

var (
	ErrUnauthorized                = errors.New("authentication required: user ID not found")
	ErrNotFound                    = errors.New("record not found")
	ErrAlreadyProcessed            = errors.New("booking was already processed")
	ErrSlotUnavailable             = errors.New("time slot is no longer available")
	ErrPaymentRecordCreationFailed = errors.New("failed to create payment record")
	ErrGatewayError                = errors.New("payment gateway error")
)
