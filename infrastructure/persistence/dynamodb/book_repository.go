// Package dynamodb implements the book record store on a single DynamoDB
// table.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bookhaven/application/ports"
	"bookhaven/domain/catalog"
	pkgerrors "bookhaven/pkg/errors"
	"bookhaven/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const entityTypeBook = "BOOK"

// BookRepository implements ports.BookRepository using DynamoDB
type BookRepository struct {
	client    *dynamodb.Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewBookRepository creates a new BookRepository. tracer may be nil when
// tracing is disabled.
func NewBookRepository(client *dynamodb.Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) ports.BookRepository {
	return &BookRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

// bookItem represents the DynamoDB item structure for a book record
type bookItem struct {
	PK            string   `dynamodbav:"PK"`
	SK            string   `dynamodbav:"SK"`
	EntityType    string   `dynamodbav:"EntityType"`
	BookID        int64    `dynamodbav:"BookID"`
	Title         string   `dynamodbav:"Title"`
	Author        string   `dynamodbav:"Author"`
	Price         float64  `dynamodbav:"Price"`
	Description   string   `dynamodbav:"Description,omitempty"`
	Rating        *float64 `dynamodbav:"Rating,omitempty"`
	ReviewCount   *int     `dynamodbav:"ReviewCount,omitempty"`
	Pages         *int     `dynamodbav:"Pages,omitempty"`
	Genre         string   `dynamodbav:"Genre,omitempty"`
	ISBN          string   `dynamodbav:"ISBN,omitempty"`
	Publisher     string   `dynamodbav:"Publisher,omitempty"`
	PublishedDate string   `dynamodbav:"PublishedDate,omitempty"`
	CoverImage    string   `dynamodbav:"CoverImage,omitempty"`
}

func bookKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("BOOK#%d", id)},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

func toItem(b catalog.Book) bookItem {
	return bookItem{
		PK:            fmt.Sprintf("BOOK#%d", b.ID),
		SK:            "METADATA",
		EntityType:    entityTypeBook,
		BookID:        b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Price:         b.Price,
		Description:   b.Description,
		Rating:        b.Rating,
		ReviewCount:   b.ReviewCount,
		Pages:         b.Pages,
		Genre:         b.Genre,
		ISBN:          b.ISBN,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		CoverImage:    b.CoverImage,
	}
}

func (i bookItem) toBook() catalog.Book {
	return catalog.Book{
		ID:            i.BookID,
		Title:         i.Title,
		Author:        i.Author,
		Price:         i.Price,
		Description:   i.Description,
		Rating:        i.Rating,
		ReviewCount:   i.ReviewCount,
		Pages:         i.Pages,
		Genre:         i.Genre,
		ISBN:          i.ISBN,
		Publisher:     i.Publisher,
		PublishedDate: i.PublishedDate,
		CoverImage:    i.CoverImage,
	}
}

// Put persists a record with create-or-replace semantics keyed by ID.
func (r *BookRepository) Put(ctx context.Context, book catalog.Book) error {
	return r.capture(ctx, "Put", func(ctx context.Context) error {
		av, err := attributevalue.MarshalMap(toItem(book))
		if err != nil {
			return pkgerrors.NewDatabaseError("marshal book", err)
		}

		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		if err != nil {
			r.logger.Error("Failed to put book",
				zap.Int64("bookID", book.ID),
				zap.Error(err),
			)
			return pkgerrors.NewDatabaseError("put book", err)
		}

		r.logger.Debug("Book saved", zap.Int64("bookID", book.ID))
		return nil
	})
}

// GetByID retrieves a record by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (catalog.Book, error) {
	var book catalog.Book
	err := r.capture(ctx, "GetByID", func(ctx context.Context) error {
		r.tracer.AddAnnotation(ctx, "bookID", strconv.FormatInt(id, 10))
		result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key:       bookKey(id),
		})
		if err != nil {
			return pkgerrors.NewDatabaseError("get book", err)
		}
		if result.Item == nil {
			return pkgerrors.NewNotFoundError("book")
		}

		var item bookItem
		if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
			return pkgerrors.NewDatabaseError("unmarshal book", err)
		}
		book = item.toBook()
		return nil
	})
	return book, err
}

// Delete removes a record by ID. The delete is conditional on the record
// existing, so deleting an absent record fails with a reason instead of
// silently succeeding.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	return r.capture(ctx, "Delete", func(ctx context.Context) error {
		r.tracer.AddAnnotation(ctx, "bookID", strconv.FormatInt(id, 10))
		cond := expression.AttributeExists(expression.Name("PK"))
		expr, err := expression.NewBuilder().WithCondition(cond).Build()
		if err != nil {
			return pkgerrors.NewDatabaseError("build delete condition", err)
		}

		_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       bookKey(id),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		if err != nil {
			var condFailed *types.ConditionalCheckFailedException
			if errors.As(err, &condFailed) {
				return pkgerrors.NewNotFoundError("book")
			}
			r.logger.Error("Failed to delete book",
				zap.Int64("bookID", id),
				zap.Error(err),
			)
			return pkgerrors.NewDatabaseError("delete book", err)
		}

		r.logger.Debug("Book deleted", zap.Int64("bookID", id))
		return nil
	})
}

// List retrieves all records.
func (r *BookRepository) List(ctx context.Context) ([]catalog.Book, error) {
	return r.scan(ctx, "List", false)
}

// ListConsistent retrieves all records with a strongly consistent scan, for
// reads that must observe a mutation that just completed.
func (r *BookRepository) ListConsistent(ctx context.Context) ([]catalog.Book, error) {
	return r.scan(ctx, "ListConsistent", true)
}

// scan pages through the table, filtering on the book entity type. The
// catalog is small by design (no server-side pagination), so a filtered scan
// is the whole read path.
func (r *BookRepository) scan(ctx context.Context, operation string, consistent bool) ([]catalog.Book, error) {
	var books []catalog.Book
	err := r.capture(ctx, operation, func(ctx context.Context) error {
		filter := expression.Name("EntityType").Equal(expression.Value(entityTypeBook))
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return pkgerrors.NewDatabaseError("build scan filter", err)
		}

		books = make([]catalog.Book, 0)
		var startKey map[string]types.AttributeValue
		for {
			result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
				TableName:                 aws.String(r.tableName),
				FilterExpression:          expr.Filter(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				ConsistentRead:            aws.Bool(consistent),
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return pkgerrors.NewDatabaseError("scan books", err)
			}

			for _, raw := range result.Items {
				var item bookItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					r.logger.Warn("Failed to unmarshal book item", zap.Error(err))
					continue
				}
				books = append(books, item.toBook())
			}

			if result.LastEvaluatedKey == nil {
				break
			}
			startKey = result.LastEvaluatedKey
		}

		r.logger.Debug("Books scanned",
			zap.Int("count", len(books)),
			zap.Bool("consistent", consistent),
		)
		return nil
	})
	return books, err
}

func (r *BookRepository) capture(ctx context.Context, operation string, fn func(context.Context) error) error {
	if r.tracer == nil {
		return fn(ctx)
	}
	return r.tracer.Capture(ctx, "BookRepository."+operation, fn)
}
