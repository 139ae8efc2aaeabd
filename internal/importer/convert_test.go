package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielbloch/gantry/internal/domain"
)

func TestConvertBuildsProjectAndTasks(t *testing.T) {
	result, err := Convert(validSchema())
	require.NoError(t, err)

	assert.Equal(t, "Launch", result.Project.Name)
	assert.Equal(t, "org-1", result.Project.OrgID)
	assert.Equal(t, domain.ProjectActive, result.Project.Status)
	assert.NotEmpty(t, result.Project.ID)

	require.Len(t, result.Tasks, 2)
	phase, design := result.Tasks[0], result.Tasks[1]

	assert.Equal(t, result.Project.ID, phase.ProjectID)
	assert.Nil(t, phase.ParentID)
	assert.Equal(t, domain.ColumnTodo, phase.ColumnID)
	assert.Equal(t, "2026-01-05", phase.StartDate.Format("2006-01-02"))

	require.NotNil(t, design.ParentID)
	assert.Equal(t, phase.ID, *design.ParentID)
	assert.Equal(t, domain.ColumnInProgress, design.ColumnID)
}

func TestConvertAssignsSequentialOrder(t *testing.T) {
	schema := validSchema()
	schema.Tasks[1].ParentRef = nil

	result, err := Convert(schema)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Tasks[0].OrderIndex)
	assert.Equal(t, 1, result.Tasks[1].OrderIndex)
}

func TestConvertPreservesExplicitOrder(t *testing.T) {
	schema := validSchema()
	schema.Tasks[1].Order = 5

	result, err := Convert(schema)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Tasks[1].OrderIndex)
}
