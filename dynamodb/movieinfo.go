package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"moviecatalog/movieinfo"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type MovieInfoRepository struct {
	client API
	table  string
}

type movieInfoItem struct {
	ID          string   `dynamodbav:"id"`
	Name        string   `dynamodbav:"name"`
	Year        int      `dynamodbav:"year"`
	Cast        []string `dynamodbav:"cast"`
	ReleaseDate string   `dynamodbav:"release_date,omitempty"`
}

func newMovieInfoItem(m movieinfo.MovieInfo) movieInfoItem {
	cast := m.Cast
	if cast == nil {
		cast = []string{}
	}
	return movieInfoItem{
		ID:          m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Cast:        cast,
		ReleaseDate: m.ReleaseDate.String(),
	}
}

func (item movieInfoItem) toMovieInfo() (movieinfo.MovieInfo, error) {
	releaseDate, err := movieinfo.ParseDate(item.ReleaseDate)
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: movie info %s: %w", item.ID, err)
	}

	cast := item.Cast
	if cast == nil {
		cast = []string{}
	}

	return movieinfo.MovieInfo{
		ID:          item.ID,
		Name:        item.Name,
		Year:        item.Year,
		Cast:        cast,
		ReleaseDate: releaseDate,
	}, nil
}

func NewMovieInfoRepository(client API, table string) *MovieInfoRepository {
	return &MovieInfoRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieInfoRepository) CreateMovieInfo(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	err := r.put(ctx, m, "attribute_not_exists(id)")
	if err != nil {
		if isConditionFailed(err) {
			return movieinfo.MovieInfo{}, movieinfo.ErrAlreadyExists
		}
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: put movie info: %w", err)
	}

	return m, nil
}

func (r *MovieInfoRepository) AllMovieInfos(ctx context.Context) ([]movieinfo.MovieInfo, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: &r.table})
}

func (r *MovieInfoRepository) MovieInfosByYear(ctx context.Context, year int) ([]movieinfo.MovieInfo, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:        &r.table,
		FilterExpression: aws.String("#year = :year"),
		ExpressionAttributeNames: map[string]string{
			"#year": "year",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":year": &types.AttributeValueMemberN{Value: strconv.Itoa(year)},
		},
	})
}

func (r *MovieInfoRepository) GetMovieInfo(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	if err := validateTable(r.table); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: get movie info: %w", err)
	}
	if len(out.Item) == 0 {
		return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
	}

	var item movieInfoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: unmarshal movie info: %w", err)
	}
	return item.toMovieInfo()
}

func (r *MovieInfoRepository) UpdateMovieInfo(ctx context.Context, id string, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	m.ID = id

	err := r.put(ctx, m, "attribute_exists(id)")
	if err != nil {
		if isConditionFailed(err) {
			return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
		}
		return movieinfo.MovieInfo{}, fmt.Errorf("dynamodb: update movie info: %w", err)
	}

	return m, nil
}

func (r *MovieInfoRepository) DeleteMovieInfo(ctx context.Context, id string) error {
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
			return movieinfo.ErrNotFound
		}
		return fmt.Errorf("dynamodb: delete movie info: %w", err)
	}
	return nil
}

func (r *MovieInfoRepository) put(ctx context.Context, m movieinfo.MovieInfo, condition string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(newMovieInfoItem(m))
	if err != nil {
		return fmt.Errorf("dynamodb: marshal movie info: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String(condition),
	})
	return err
}

func (r *MovieInfoRepository) scan(ctx context.Context, input *dynamodb.ScanInput) ([]movieinfo.MovieInfo, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	infos := []movieinfo.MovieInfo{}
	err := scanAll(ctx, r.client, input, func(page []map[string]types.AttributeValue) error {
		var items []movieInfoItem
		if err := attributevalue.UnmarshalListOfMaps(page, &items); err != nil {
			return fmt.Errorf("dynamodb: unmarshal movie infos: %w", err)
		}
		for _, item := range items {
			m, err := item.toMovieInfo()
			if err != nil {
				return err
			}
			infos = append(infos, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: scan movie infos: %w", err)
	}

	return infos, nil
}
