package dto_test

import (
	"testing"

	"tavola/internal/domains/table/model"
	"tavola/internal/domains/table/model/dto"
	gModel "tavola/shared/model"
	"tavola/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestInitializeTablesRequest_ToModels(t *testing.T) {
	req := dto.InitializeTablesRequest{
		Count:      4,
		Capacities: []int{2, 6},
	}

	userID := "test-user-id"
	tables := req.ToModels(userID)

	assert.Len(t, tables, 4)

	assert.Equal(t, 1, tables[0].TableNumber)
	assert.Equal(t, 2, tables[0].Capacity)
	assert.Equal(t, 6, tables[1].Capacity)
	assert.Equal(t, model.DefaultCapacity, tables[2].Capacity, "expected default capacity beyond the plan")
	assert.Equal(t, model.DefaultCapacity, tables[3].Capacity)
	assert.Equal(t, 4, tables[3].TableNumber)

	for _, table := range tables {
		assert.True(t, table.Active)
		assert.Equal(t, userID, table.CreatedBy)
		assert.Equal(t, userID, table.ModifiedBy)
		assert.False(t, table.CreatedAt.IsZero(), "expected CreatedAt to be set")
	}
}

func TestTableResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	tableModel := model.Table{
		TableNumber: 7,
		Capacity:    6,
		Active:      true,
		Notes:       "window seat",
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.TableResponse
	response.FromModel(tableModel)

	assert.Equal(t, tableModel.TableNumber, response.TableNumber)
	assert.Equal(t, tableModel.Capacity, response.Capacity)
	assert.Equal(t, tableModel.Active, response.Active)
	assert.Equal(t, tableModel.Notes, response.Notes)
	assert.Equal(t, tableModel.CreatedBy, response.CreatedBy)
	assert.Equal(t, tableModel.ModifiedBy, response.ModifiedBy)
}

func TestGetTablesResponse_FromModels(t *testing.T) {
	tables := []model.Table{
		{TableNumber: 1, Capacity: 2, Active: true},
		{TableNumber: 2, Capacity: 4, Active: false},
	}

	var response dto.GetTablesResponse
	response.FromModels(tables, 22, 10)

	assert.Len(t, response.Tables, 2)
	assert.Equal(t, 22, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Equal(t, 1, response.Tables[0].TableNumber)
	assert.Equal(t, 2, response.Tables[1].TableNumber)
	assert.False(t, response.Tables[1].Active)
}
