package repository

import (
	"context"
	"errors"
	"fmt"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/room/model"
	"roomdesk/shared"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	gRepo "roomdesk/shared/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresImpl struct {
	gRepo.Repository[model.Room]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Room {
	return &postgresImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *postgresImpl) Insert(ctx context.Context, room model.Room) (model.Room, error) {
	room.ID = uuid.NewString()

	if err := r.Repository.Insert(ctx, room); err != nil {
		return model.Room{}, mapPqError(err)
	}

	return room, nil
}

func (r *postgresImpl) Get(ctx context.Context, id string) (model.Room, error) {
	if !isUUID(id) {
		return model.Room{}, nil
	}

	return r.Repository.Get(ctx, byID(id)) //nolint:wrapcheck
}

func (r *postgresImpl) GetAll(ctx context.Context, filter model.Filter) ([]model.Room, error) {
	return r.Repository.GetAll(ctx, gDto.DefaultQueryParams(), listFilter(filter)) //nolint:wrapcheck
}

func (r *postgresImpl) Exist(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	return r.Repository.Exist(ctx, byID(id)) //nolint:wrapcheck
}

func (r *postgresImpl) ExistByRoomNumber(ctx context.Context, roomNumber string) (bool, error) {
	return r.Repository.Exist(ctx, shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)) //nolint:wrapcheck
}

func (r *postgresImpl) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	affected, err := r.Repository.Update(ctx, fields, byID(id))
	if err != nil {
		return false, mapPqError(err)
	}

	return affected > 0, nil
}

func (r *postgresImpl) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	affected, err := r.Repository.Delete(ctx, byID(id))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// listFilter ANDs an OR group over room number and description with the enum restrictions.
func listFilter(filter model.Filter) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.Search != constant.Empty {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []gDto.Clause{
				gDto.Filter{
					ArgName:  "search_room_number",
					Field:    model.FieldRoomNumber,
					Value:    filter.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_description",
					Field:    model.FieldDescription,
					Value:    filter.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
			},
		})
	}

	if f := shared.FilterUnlessAll(model.FieldType, filter.Type, model.TableName); f != nil {
		group.Filters = append(group.Filters, *f)
	}

	if f := shared.FilterUnlessAll(model.FieldStatus, filter.Status, model.TableName); f != nil {
		group.Filters = append(group.Filters, *f)
	}

	return group
}

func mapPqError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, pqErr.Constraint)
	}

	return err
}

func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
