package dto

import (
	"tavola/internal/domains/table/model"
	"tavola/shared"
	gDto "tavola/shared/dto"
	gModel "tavola/shared/model"
	"tavola/shared/timezone"
)

type InitializeTablesRequest struct {
	Count      int   `json:"count"      validate:"required,min=1,max=22"`
	Capacities []int `json:"capacities" validate:"omitempty,max=22,dive,min=1,max=12"`
}

// ToModels builds the fixed registry. Capacities are applied positionally;
// tables beyond the plan get the default capacity.
func (r *InitializeTablesRequest) ToModels(user string) []model.Table {
	tables := make([]model.Table, r.Count)

	for i := range tables {
		capacity := model.DefaultCapacity
		if i < len(r.Capacities) {
			capacity = r.Capacities[i]
		}

		tables[i] = model.Table{
			TableNumber: model.MinTableNumber + i,
			Capacity:    capacity,
			Active:      true,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return tables
}

type UpdateTableRequest struct {
	Capacity *int    `db:"capacity" json:"capacity" validate:"omitempty,min=1,max=12"`
	Active   *bool   `db:"active"   json:"active"   validate:"omitempty"`
	Notes    *string `db:"notes"    json:"notes"    validate:"omitempty,max=500"`
}

type TableResponse struct {
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
	Notes       string `json:"notes"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.TableNumber = model.TableNumber
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
