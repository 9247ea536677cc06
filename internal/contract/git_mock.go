package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, workDir string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, workDir)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// CloneShallow implements the GitClient interface.
func (m *MockGitClient) CloneShallow(ctx context.Context, url, targetPath string, depth int) error {
	ret := m.Called(ctx, url, targetPath, depth)
	return ret.Error(0)
}
