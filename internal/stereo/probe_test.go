package stereo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/application/port/mocks"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/stereo"
)

func TestProber_RunsOnceAndReportsUnknownAsUnsupported(t *testing.T) {
	ctx := context.Background()
	quad := mocks.NewMockQuadBufferChecker(t)
	secondary := mocks.NewMockSecondaryAPIInspector(t)

	release := make(chan struct{})
	quad.EXPECT().CheckQuadBuffer(mock.Anything).
		RunAndReturn(func(context.Context) (bool, error) {
			<-release
			return true, nil
		}).Once()
	secondary.EXPECT().Inspect(mock.Anything).
		RunAndReturn(func(context.Context) (*entity.SecondaryAPIInfo, error) {
			<-release
			return &entity.SecondaryAPIInfo{HasNvAdapter: true, HasNvStereoSupport: true}, nil
		}).Once()

	p := stereo.NewProber(quad, secondary, time.Second)
	p.ProbeAsync(ctx)
	p.ProbeAsync(ctx)

	assert.False(t, p.QuadBufferSupport())
	assert.Nil(t, p.SecondaryAPIInfo())
	assert.False(t, p.Result().Complete)

	close(release)
	result, err := p.Wait(ctx)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.True(t, p.QuadBufferSupport())
	require.NotNil(t, p.SecondaryAPIInfo())
	assert.True(t, p.SecondaryAPIInfo().HasNvStereoSupport)
	assert.True(t, result.SecondaryStereo())
}

func TestProber_ErrorsMeanAbsent(t *testing.T) {
	ctx := context.Background()
	quad := mocks.NewMockQuadBufferChecker(t)
	secondary := mocks.NewMockSecondaryAPIInspector(t)
	quad.EXPECT().CheckQuadBuffer(mock.Anything).Return(true, errors.New("no visual"))
	secondary.EXPECT().Inspect(mock.Anything).Return(nil, errors.New("no loader"))

	p := stereo.NewProber(quad, secondary, time.Second)
	p.ProbeAsync(ctx)
	result, err := p.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, entity.No, result.QuadBufferGL)
	assert.Nil(t, result.SecondaryAPI)
}

func TestProber_NilCheckers(t *testing.T) {
	ctx := context.Background()
	p := stereo.NewProber(nil, nil, time.Second)
	p.ProbeAsync(ctx)
	result, err := p.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, result.Complete)
	assert.False(t, p.QuadBufferSupport())
}

func TestProber_WaitHonoursContext(t *testing.T) {
	quad := mocks.NewMockQuadBufferChecker(t)
	quad.EXPECT().CheckQuadBuffer(mock.Anything).
		RunAndReturn(func(ctx context.Context) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})

	p := stereo.NewProber(quad, nil, 200*time.Millisecond)
	p.ProbeAsync(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The probe itself is bounded by its own timeout.
	result, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.No, result.QuadBufferGL)
}

func TestProber_ReprobeRunsAgain(t *testing.T) {
	ctx := context.Background()
	quad := mocks.NewMockQuadBufferChecker(t)
	quad.EXPECT().CheckQuadBuffer(mock.Anything).Return(false, nil).Once()
	quad.EXPECT().CheckQuadBuffer(mock.Anything).Return(true, nil).Once()

	p := stereo.NewProber(quad, nil, time.Second)
	p.ProbeAsync(ctx)
	_, err := p.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, p.QuadBufferSupport())
	gen := p.Generation()

	p.Reprobe(ctx)
	_, err = p.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, p.QuadBufferSupport())
	assert.Greater(t, p.Generation(), gen)
}
