package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ConfirmPayload) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

func (p EggPayload) Validate() error {
	if p.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

func (p EggsPayload) Validate() error {
	if len(p.Eggs) == 0 {
		return errors.New("eggs list cannot be empty")
	}
	for i, e := range p.Eggs {
		if e.Code == "" {
			return fmt.Errorf("eggs[%d]: code is required", i)
		}
	}
	return nil
}
