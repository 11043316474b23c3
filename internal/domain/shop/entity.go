package shop

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid shop status")

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Shop struct {
	id           uuid.UUID
	name         string
	address      string
	shopkeeperID *uuid.UUID
	status       Status
}

func ReconstructShop(id uuid.UUID, name, address string, shopkeeperID *uuid.UUID, status Status) *Shop {
	return &Shop{id: id, name: name, address: address, shopkeeperID: shopkeeperID, status: status}
}

func (s *Shop) ID() uuid.UUID            { return s.id }
func (s *Shop) Name() string             { return s.name }
func (s *Shop) Address() string          { return s.address }
func (s *Shop) ShopkeeperID() *uuid.UUID { return s.shopkeeperID }
func (s *Shop) Status() Status           { return s.status }

func (s *Shop) AcceptsBookings() bool {
	return s.status == StatusApproved
}
