// Package history persists rebalancing runs to DynamoDB with a single table
// design, so proposed order lists can be audited after the fact.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/portfolio"
)

const itemTypeRun = "REBALANCE_RUN"

// RebalanceRun is one recorded rebalancing computation
type RebalanceRun struct {
	UUID           uuid.UUID         `json:"uuid"`
	AccountID      string            `json:"account_id"`
	PortfolioValue decimal.Decimal   `json:"portfolio_value"`
	Orders         []portfolio.Order `json:"orders"`
	Executed       bool              `json:"executed"`
	CreatedAt      time.Time         `json:"created_at"`
}

// unifiedItem is the single-table envelope every record is stored in
type unifiedItem struct {
	PK        string    `dynamodbav:"pk"`
	SK        string    `dynamodbav:"sk"`
	Type      string    `dynamodbav:"type"`
	Data      string    `dynamodbav:"data"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// Service handles all DynamoDB operations for run history
type Service struct {
	client    *dynamodb.Client
	tableName string
}

// NewService creates a new history service instance
func NewService(region, tableName string) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// SaveRun saves a single rebalancing run
func (s *Service) SaveRun(ctx context.Context, run RebalanceRun) error {
	item, err := marshalRun(run)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put run %s: %w", run.UUID, err)
	}
	return nil
}

// SaveRuns saves multiple runs in batches of 25 (the DynamoDB write limit)
func (s *Service) SaveRuns(ctx context.Context, runs []RebalanceRun) error {
	var writeRequests []dynamodbtypes.WriteRequest
	for _, run := range runs {
		item, err := marshalRun(run)
		if err != nil {
			return err
		}
		writeRequests = append(writeRequests, dynamodbtypes.WriteRequest{
			PutRequest: &dynamodbtypes.PutRequest{Item: item},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := i + 25
		if end > len(writeRequests) {
			end = len(writeRequests)
		}

		_, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]dynamodbtypes.WriteRequest{
				s.tableName: writeRequests[i:end],
			},
		})
		if err != nil {
			return fmt.Errorf("failed to batch write runs: %w", err)
		}
	}
	return nil
}

// RunsForAccount loads every recorded run for an account
func (s *Service) RunsForAccount(ctx context.Context, accountID string) ([]RebalanceRun, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":pk": &dynamodbtypes.AttributeValueMemberS{Value: runPK(accountID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for account %s: %w", accountID, err)
	}

	var runs []RebalanceRun
	for _, item := range result.Items {
		var envelope unifiedItem
		if err := attributevalue.UnmarshalMap(item, &envelope); err != nil {
			continue
		}
		if envelope.Type != itemTypeRun {
			continue
		}
		var run RebalanceRun
		if err := json.Unmarshal([]byte(envelope.Data), &run); err == nil {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func marshalRun(run RebalanceRun) (map[string]dynamodbtypes.AttributeValue, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run %s: %w", run.UUID, err)
	}

	item, err := attributevalue.MarshalMap(unifiedItem{
		PK:        runPK(run.AccountID),
		SK:        run.UUID.String(),
		Type:      itemTypeRun,
		Data:      string(data),
		CreatedAt: run.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item for run %s: %w", run.UUID, err)
	}
	return item, nil
}

func runPK(accountID string) string {
	return "RUN#" + accountID
}
