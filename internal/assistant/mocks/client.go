// Package mocks holds a testify mock of the assistant client.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Client) Reply(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	args := m.Called(ctx, history, message)

	return args.String(0), args.Error(1)
}
