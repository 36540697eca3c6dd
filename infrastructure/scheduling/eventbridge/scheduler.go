package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dreamvault/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// dispatchTargetID is the fixed target ID attached to every alarm rule
const dispatchTargetID = "dispatch"

// API is the subset of the EventBridge client the scheduler uses
type API interface {
	PutRule(ctx context.Context, params *eventbridge.PutRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutRuleOutput, error)
	PutTargets(ctx context.Context, params *eventbridge.PutTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutTargetsOutput, error)
	RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
	DescribeEventBus(ctx context.Context, params *eventbridge.DescribeEventBusInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DescribeEventBusOutput, error)
}

// Scheduler implements ports.ReminderScheduler on EventBridge scheduled
// rules. One rule per alarm, named by alarm ID, firing a daily cron that
// invokes the dispatch function.
//
// PutRule on an existing name replaces its schedule, which gives Register
// the required upsert semantics for free.
type Scheduler struct {
	api         API
	rulePrefix  string
	dispatchARN string
	roleARN     string
	logger      *zap.Logger
}

// NewScheduler creates a new EventBridge-backed scheduler
func NewScheduler(api API, rulePrefix, dispatchARN, roleARN string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		api:         api,
		rulePrefix:  rulePrefix,
		dispatchARN: dispatchARN,
		roleARN:     roleARN,
		logger:      logger,
	}
}

// dispatchPayload is the constant input handed to the dispatch function
// each time a rule fires
type dispatchPayload struct {
	AlarmID string `json:"alarm_id"`
	Label   string `json:"label"`
	Body    string `json:"body"`
}

// Register installs or replaces the daily trigger for the given alarm
func (s *Scheduler) Register(ctx context.Context, alarmID string, hour, minute int, label, body string) error {
	name := s.ruleName(alarmID)
	// EventBridge cron fields are minute-first
	schedule := fmt.Sprintf("cron(%d %d * * ? *)", minute, hour)

	_, err := s.api.PutRule(ctx, &eventbridge.PutRuleInput{
		Name:               aws.String(name),
		ScheduleExpression: aws.String(schedule),
		State:              types.RuleStateEnabled,
		Description:        aws.String(fmt.Sprintf("Daily reminder for alarm %s", alarmID)),
	})
	if err != nil {
		return fmt.Errorf("failed to put rule %s: %w", name, err)
	}

	payload, err := json.Marshal(dispatchPayload{AlarmID: alarmID, Label: label, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch payload: %w", err)
	}

	target := types.Target{
		Id:    aws.String(dispatchTargetID),
		Arn:   aws.String(s.dispatchARN),
		Input: aws.String(string(payload)),
	}
	if s.roleARN != "" {
		target.RoleArn = aws.String(s.roleARN)
	}

	out, err := s.api.PutTargets(ctx, &eventbridge.PutTargetsInput{
		Rule:    aws.String(name),
		Targets: []types.Target{target},
	})
	if err != nil {
		return fmt.Errorf("failed to put targets for rule %s: %w", name, err)
	}
	if out.FailedEntryCount > 0 {
		return fmt.Errorf("failed to attach target to rule %s: %d entries rejected", name, out.FailedEntryCount)
	}

	s.logger.Info("Reminder registered",
		zap.String("alarmID", alarmID),
		zap.String("rule", name),
		zap.String("schedule", schedule),
	)

	return nil
}

// Cancel removes the trigger for the given alarm. A missing rule means
// nothing was registered; that is not an error.
func (s *Scheduler) Cancel(ctx context.Context, alarmID string) error {
	name := s.ruleName(alarmID)

	_, err := s.api.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{
		Rule: aws.String(name),
		Ids:  []string{dispatchTargetID},
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to remove targets for rule %s: %w", name, err)
	}

	_, err = s.api.DeleteRule(ctx, &eventbridge.DeleteRuleInput{
		Name: aws.String(name),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete rule %s: %w", name, err)
	}

	s.logger.Info("Reminder canceled",
		zap.String("alarmID", alarmID),
		zap.String("rule", name),
	)

	return nil
}

// Probe reports whether the event bus is reachable with the current
// credentials. Called once at startup.
func (s *Scheduler) Probe(ctx context.Context) bool {
	if _, err := s.api.DescribeEventBus(ctx, &eventbridge.DescribeEventBusInput{}); err != nil {
		s.logger.Warn("Event bus probe failed; reminders disabled", zap.Error(err))
		return false
	}
	return true
}

func (s *Scheduler) ruleName(alarmID string) string {
	return s.rulePrefix + "-" + alarmID
}

func isNotFound(err error) bool {
	var rnf *types.ResourceNotFoundException
	return errors.As(err, &rnf)
}

var _ ports.ReminderScheduler = (*Scheduler)(nil)
