package eventbridge

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	putRules      []*eventbridge.PutRuleInput
	putTargets    []*eventbridge.PutTargetsInput
	removeTargets []*eventbridge.RemoveTargetsInput
	deleteRules   []*eventbridge.DeleteRuleInput

	removeTargetsErr error
	deleteRuleErr    error
	describeErr      error
}

func (f *fakeAPI) PutRule(ctx context.Context, params *eventbridge.PutRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutRuleOutput, error) {
	f.putRules = append(f.putRules, params)
	return &eventbridge.PutRuleOutput{}, nil
}

func (f *fakeAPI) PutTargets(ctx context.Context, params *eventbridge.PutTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutTargetsOutput, error) {
	f.putTargets = append(f.putTargets, params)
	return &eventbridge.PutTargetsOutput{}, nil
}

func (f *fakeAPI) RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error) {
	f.removeTargets = append(f.removeTargets, params)
	if f.removeTargetsErr != nil {
		return nil, f.removeTargetsErr
	}
	return &eventbridge.RemoveTargetsOutput{}, nil
}

func (f *fakeAPI) DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error) {
	f.deleteRules = append(f.deleteRules, params)
	if f.deleteRuleErr != nil {
		return nil, f.deleteRuleErr
	}
	return &eventbridge.DeleteRuleOutput{}, nil
}

func (f *fakeAPI) DescribeEventBus(ctx context.Context, params *eventbridge.DescribeEventBusInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DescribeEventBusOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &eventbridge.DescribeEventBusOutput{}, nil
}

func newTestScheduler(api *fakeAPI) *Scheduler {
	return NewScheduler(api, "dreamvault-alarm", "arn:aws:lambda:us-west-2:123456789012:function:dispatch", "", zap.NewNop())
}

func TestScheduler_Register(t *testing.T) {
	api := &fakeAPI{}
	s := newTestScheduler(api)

	err := s.Register(context.Background(), "alarm-1", 7, 30, "Morning", "Tap here to record a new dream entry!")

	require.NoError(t, err)
	require.Len(t, api.putRules, 1)
	assert.Equal(t, "dreamvault-alarm-alarm-1", *api.putRules[0].Name)
	// Minute comes first in EventBridge cron syntax
	assert.Equal(t, "cron(30 7 * * ? *)", *api.putRules[0].ScheduleExpression)

	require.Len(t, api.putTargets, 1)
	require.Len(t, api.putTargets[0].Targets, 1)
	assert.Contains(t, *api.putTargets[0].Targets[0].Input, `"alarm_id":"alarm-1"`)
	assert.Contains(t, *api.putTargets[0].Targets[0].Input, "Tap here to record a new dream entry!")
}

func TestScheduler_Register_ReplacesExisting(t *testing.T) {
	api := &fakeAPI{}
	s := newTestScheduler(api)

	require.NoError(t, s.Register(context.Background(), "alarm-1", 7, 30, "Morning", "body"))
	require.NoError(t, s.Register(context.Background(), "alarm-1", 8, 0, "Morning", "body"))

	// Both installs target the same rule name; PutRule upserts
	require.Len(t, api.putRules, 2)
	assert.Equal(t, *api.putRules[0].Name, *api.putRules[1].Name)
	assert.Equal(t, "cron(0 8 * * ? *)", *api.putRules[1].ScheduleExpression)
}

func TestScheduler_Cancel(t *testing.T) {
	api := &fakeAPI{}
	s := newTestScheduler(api)

	err := s.Cancel(context.Background(), "alarm-1")

	require.NoError(t, err)
	require.Len(t, api.removeTargets, 1)
	assert.Equal(t, "dreamvault-alarm-alarm-1", *api.removeTargets[0].Rule)
	require.Len(t, api.deleteRules, 1)
	assert.Equal(t, "dreamvault-alarm-alarm-1", *api.deleteRules[0].Name)
}

func TestScheduler_Cancel_AbsentRuleIsNoOp(t *testing.T) {
	api := &fakeAPI{
		removeTargetsErr: &types.ResourceNotFoundException{},
		deleteRuleErr:    &types.ResourceNotFoundException{},
	}
	s := newTestScheduler(api)

	assert.NoError(t, s.Cancel(context.Background(), "alarm-never-registered"))
}

func TestScheduler_Probe(t *testing.T) {
	s := newTestScheduler(&fakeAPI{})
	assert.True(t, s.Probe(context.Background()))

	broken := newTestScheduler(&fakeAPI{describeErr: &types.InternalException{}})
	assert.False(t, broken.Probe(context.Background()))
}
