package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockLicensingClientForTest creates a new mock LicensingClient for testing
func NewMockLicensingClientForTest(t *testing.T) *MockLicensingClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockLicensingClient(ctrl)
}

// NewMockTokenClientForTest creates a new mock TokenClient for testing
func NewMockTokenClientForTest(t *testing.T) *MockTokenClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTokenClient(ctrl)
}

// NewMockNativeClientForTest creates a new mock NativeClient for testing
func NewMockNativeClientForTest(t *testing.T) *MockNativeClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockNativeClient(ctrl)
}

// NewMockEventEmitterForTest creates a new mock EventEmitter for testing
func NewMockEventEmitterForTest(t *testing.T) *MockEventEmitter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventEmitter(ctrl)
}

// NewMockEventPublisherForTest creates a new mock EventPublisher for testing
func NewMockEventPublisherForTest(t *testing.T) *MockEventPublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventPublisher(ctrl)
}

// NewMockEventJournalForTest creates a new mock EventJournal for testing
func NewMockEventJournalForTest(t *testing.T) *MockEventJournal {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventJournal(ctrl)
}

// NewMockSecretsProviderForTest creates a new mock SecretsProvider for testing
func NewMockSecretsProviderForTest(t *testing.T) *MockSecretsProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockSecretsProvider(ctrl)
}

// NewMockStoreForTest creates a new mock whitelist Store for testing
func NewMockStoreForTest(t *testing.T) *MockStore {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockStore(ctrl)
}
