// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the caller's profile.
func (service *Service) Get(ctx context.Context, accountID int64) (*Profile, error) {
	p, err := service.repo.Get(ctx, accountID)
	return p, dberr.NotFound(err, "Profile")
}

// Create stores the first profile of an account. A second call conflicts.
func (service *Service) Create(ctx context.Context, accountID int64, input Input) (*Profile, error) {
	input = clean(input)
	if err := check(input); err != nil {
		return nil, err
	}

	_, err := service.repo.Get(ctx, accountID)
	if err == nil {
		return nil, apperr.Conflict("Profile already exists")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	return service.repo.Create(ctx, accountID, input)
}

// Update replaces every editable field of the caller's profile.
func (service *Service) Update(ctx context.Context, accountID int64, input Input) (*Profile, error) {
	input = clean(input)
	if err := check(input); err != nil {
		return nil, err
	}

	p, err := service.repo.Update(ctx, accountID, input)
	return p, dberr.NotFound(err, "Profile")
}

func clean(input Input) Input {
	return Input{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Username:  strings.TrimSpace(input.Username),
	}
}

func check(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, NameMaxLength).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, NameMaxLength).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength)
	return validator.Err()
}
