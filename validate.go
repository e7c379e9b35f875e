// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spacematch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/someonegg/spacematch/ident"
)

var ErrValidation = errors.New("validation failed")

// Density tiers: at most 5 workstations per 8 area units below 60
// workstations, 5 per 7 from 60 on.
const (
	densityThreshold = 60
	densityLowArea   = 8
	densityHighArea  = 7
	densityStations  = 5
)

type AddUserRequest struct {
	FirstName        string            `json:"first_name" validate:"required"`
	LastName         string            `json:"last_name" validate:"required"`
	WorkspaceRequest *WorkspaceRequest `json:"workspace_request,omitempty"`
}

type AddRentalSpaceRequest struct {
	Name                string `json:"name"`
	Address             string `json:"address"`
	Surface             int64  `json:"surface" validate:"gt=0"`
	NbWorkstations      int64  `json:"nb_workstations" validate:"gte=40,lte=180"`
	PricePerWorkstation int64  `json:"price_per_workstation" validate:"gte=300,lte=800"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	v.RegisterStructValidation(validateDensity, AddRentalSpaceRequest{})

	return v
}

func validateDensity(sl validator.StructLevel) {
	req := sl.Current().Interface().(AddRentalSpaceRequest)
	if req.NbWorkstations <= 0 || req.Surface <= 0 {
		return
	}

	area := int64(densityLowArea)
	if req.NbWorkstations >= densityThreshold {
		area = densityHighArea
	}
	if req.NbWorkstations*area > req.Surface*densityStations {
		sl.ReportError(req.NbWorkstations, "nb_workstations", "NbWorkstations",
			"density", fmt.Sprint(area))
	}
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, e.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
		case "density":
			message = fmt.Sprintf("%s exceeds %d workstations per %s area units",
				field, densityStations, e.Param())
		default:
			message = fmt.Sprintf("%s failed validation for %s", field, e.Tag())
		}
		messages = append(messages, message)
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

// NewUser validates the request and creates a user with a fresh id.
func NewUser(ids ident.Generator, req AddUserRequest) (*User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := &User{
		Base:      newBase(ids.New(PrefixUser)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.WorkspaceRequest != nil {
		wr := *req.WorkspaceRequest
		user.WorkspaceRequest = &wr
	}
	return user, nil
}

// NewRentalSpace validates the request, including the workstation density
// rule, and creates a rental space owned by ownerID.
func NewRentalSpace(ids ident.Generator, req AddRentalSpaceRequest, ownerID string) (*RentalSpace, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner_id is required", ErrValidation)
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	return &RentalSpace{
		Base:                newBase(ids.New(PrefixOffice)),
		Name:                req.Name,
		Address:             req.Address,
		Surface:             req.Surface,
		NbWorkstations:      req.NbWorkstations,
		PricePerWorkstation: req.PricePerWorkstation,
		OwnerID:             ownerID,
	}, nil
}
