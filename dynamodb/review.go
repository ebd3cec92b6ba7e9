package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"moviecatalog/review"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type ReviewRepository struct {
	client API
	table  string
}

type reviewItem struct {
	ID          string  `dynamodbav:"id"`
	MovieInfoID int64   `dynamodbav:"movie_info_id"`
	Comment     string  `dynamodbav:"comment"`
	Rating      float64 `dynamodbav:"rating"`
}

func NewReviewRepository(client API, table string) *ReviewRepository {
	return &ReviewRepository{
		client: client,
		table:  table,
	}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rv review.Review) (review.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}

	err := r.put(ctx, rv, "attribute_not_exists(id)")
	if err != nil {
		if isConditionFailed(err) {
			return review.Review{}, review.ErrAlreadyExists
		}
		return review.Review{}, fmt.Errorf("dynamodb: put review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) AllReviews(ctx context.Context) ([]review.Review, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: &r.table})
}

func (r *ReviewRepository) ReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]review.Review, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:        &r.table,
		FilterExpression: aws.String("movie_info_id = :movie_info_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":movie_info_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(movieInfoID, 10)},
		},
	})
}

func (r *ReviewRepository) GetReview(ctx context.Context, id string) (review.Review, error) {
	if err := validateTable(r.table); err != nil {
		return review.Review{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return review.Review{}, fmt.Errorf("dynamodb: get review: %w", err)
	}
	if len(out.Item) == 0 {
		return review.Review{}, review.ErrNotFound
	}

	var item reviewItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return review.Review{}, fmt.Errorf("dynamodb: unmarshal review: %w", err)
	}
	return review.Review(item), nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id string, rv review.Review) (review.Review, error) {
	rv.ID = id

	err := r.put(ctx, rv, "attribute_exists(id)")
	if err != nil {
		if isConditionFailed(err) {
			return review.Review{}, review.ErrNotFound
		}
		return review.Review{}, fmt.Errorf("dynamodb: update review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &r.table,
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return review.ErrNotFound
		}
		return fmt.Errorf("dynamodb: delete review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) put(ctx context.Context, rv review.Review, condition string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(reviewItem(rv))
	if err != nil {
		return fmt.Errorf("dynamodb: marshal review: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String(condition),
	})
	return err
}

func (r *ReviewRepository) scan(ctx context.Context, input *dynamodb.ScanInput) ([]review.Review, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	reviews := []review.Review{}
	err := scanAll(ctx, r.client, input, func(page []map[string]types.AttributeValue) error {
		var items []reviewItem
		if err := attributevalue.UnmarshalListOfMaps(page, &items); err != nil {
			return fmt.Errorf("dynamodb: unmarshal reviews: %w", err)
		}
		for _, item := range items {
			reviews = append(reviews, review.Review(item))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: scan reviews: %w", err)
	}
	return reviews, nil
}
