// Package mocks provides mock implementations for testing the postroom job engine.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// core collaborator ports. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	provider := mocks.NewMockDeliveryProvider(ctrl)
//	provider.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mocks for the collaborator ports from internal/core:
// DatasetOpener, AttachmentResolver, DeliveryProvider, Composer.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=core_mocks.go github.com/postroom/postroom/internal/core DatasetOpener,AttachmentResolver,DeliveryProvider,Composer
