package implementation_test

import (
	"context"
	"testing"

	"lawpro-be/internal/model"
	"lawpro-be/internal/repository/implementation"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLawyerRepository_LocationFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	testutil.SeedLawyers(t, db,
		model.Lawyer{LawFirm: "Lane Legal", County: "Lane County", City: "Eugene", State: "Oregon"},
		model.Lawyer{LawFirm: "Portland Law", County: "Multnomah", City: "Portland", State: "Oregon"},
		model.Lawyer{LawFirm: "Hoosier Defense", County: "Marion", City: "Indianapolis", State: "Indiana"},
	)
	repo := implementation.NewLawyerRepository(db)

	tests := []struct {
		name      string
		specs     []specification.Specification
		wantFirms []string
	}{
		{
			name:      "county and state case-insensitive",
			specs:     []specification.Specification{specification.CountyLike{County: "LANE"}, specification.StateLike{State: "oregon"}},
			wantFirms: []string{"Lane Legal"},
		},
		{
			name:      "state only ordered by id",
			specs:     []specification.Specification{specification.StateLike{State: "Oregon"}},
			wantFirms: []string{"Lane Legal", "Portland Law"},
		},
		{
			name:      "city matches county or city",
			specs:     []specification.Specification{specification.CountyOrCityLike{Place: "indianapolis"}},
			wantFirms: []string{"Hoosier Defense"},
		},
		{
			name:      "no match",
			specs:     []specification.Specification{specification.CountyLike{County: "Allen"}, specification.StateLike{State: "Indiana"}},
			wantFirms: []string{},
		},
		{
			name:      "page size caps rows",
			specs:     []specification.Specification{specification.Pagination{Limit: 1}},
			wantFirms: []string{"Lane Legal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := append(tt.specs, specification.OrderBy{Field: "id"})
			lawyers, err := repo.FindAll(ctx, specs...)
			require.NoError(t, err)

			firms := make([]string, 0, len(lawyers))
			for _, l := range lawyers {
				firms = append(firms, l.LawFirm)
			}
			assert.Equal(t, tt.wantFirms, firms)
		})
	}
}

func TestLawyerRepository_FindOne(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	seeded := testutil.SeedLawyers(t, db, model.Lawyer{LawFirm: "Law Offices of Ann Lee", PhoneNumber: "555-0100", State: "Oregon"})
	repo := implementation.NewLawyerRepository(db)

	got, err := repo.FindOne(ctx, specification.ByLawyerID{ID: seeded[0].Id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "555-0100", got.PhoneNumber)

	none, err := repo.FindOne(ctx, specification.ByLawyerID{ID: 9999})
	require.NoError(t, err)
	assert.Nil(t, none)
}
