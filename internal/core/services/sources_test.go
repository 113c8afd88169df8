package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven/mocks"
)

func candidateIDs(cands []*domain.Candidate) []string {
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestProcedureSource_VisibleSets(t *testing.T) {
	store := mocks.NewMockProcedureStore(testProcedures()...)
	src := NewProcedureSource(store, NewVisibilityResolver())
	ctx := context.Background()

	tests := []struct {
		name   string
		caller domain.AuthorizationContext
		want   []string
	}{
		{"manager sees every non-archived one", memberCaller(personBernd, domain.CapabilityManageProcedures), []string{"proc-1", "proc-2", "proc-3", "proc-4"}},
		{"admin is a manager", adminCaller(), []string{"proc-1", "proc-2", "proc-3", "proc-4"}},
		{"creator adds own draft", memberCaller(personAnna), []string{"proc-1", "proc-2", "proc-3"}},
		{"member adds assigned review", memberCaller(personBernd), []string{"proc-1", "proc-2", "proc-4"}},
		{"account without person sees published only", memberCaller(""), []string{"proc-1", "proc-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, err := src.FetchCandidates(ctx, tt.caller)
			require.NoError(t, err)
			assert.Equal(t, tt.want, candidateIDs(cands))
		})
	}
}

func TestProcedureSource_UnionDedupesByID(t *testing.T) {
	// Published and created by the caller: matched by both queries
	store := mocks.NewMockProcedureStore(&domain.Procedure{
		ID: "proc-own", Title: "Eigene Leitlinie", Status: domain.ProcedureStatusPublished, CreatedBy: personAnna,
	}, &domain.Procedure{
		ID: "proc-own-draft", Title: "Eigene Leitlinie", Status: domain.ProcedureStatusDraft, CreatedBy: personAnna,
	})
	src := NewProcedureSource(store, NewVisibilityResolver())

	cands, err := src.FetchCandidates(context.Background(), memberCaller(personAnna))
	require.NoError(t, err)
	assert.Equal(t, []string{"proc-own", "proc-own-draft"}, candidateIDs(cands))
	assert.Len(t, store.Filters(), 2)
}

func TestProcedureSource_Candidate(t *testing.T) {
	store := mocks.NewMockProcedureStore(testProcedures()[0])
	cands, err := NewProcedureSource(store, NewVisibilityResolver()).FetchCandidates(context.Background(), memberCaller(personAnna))
	require.NoError(t, err)
	require.Len(t, cands, 1)

	c := cands[0]
	assert.Equal(t, domain.EntityProcedures, c.Type)
	assert.Equal(t, "/procedures/proc-1", c.URL)
	assert.Equal(t, "Kreißsaal · v2", c.Subtitle)
	assert.Equal(t, domain.ProcedureStatusPublished, c.Metadata.Status)
}

func TestProcedureSource_Errors(t *testing.T) {
	store := mocks.NewMockProcedureStore(testProcedures()...)
	store.Err = errors.New("connection refused")
	src := NewProcedureSource(store, NewVisibilityResolver())

	_, err := src.FetchCandidates(context.Background(), memberCaller(personAnna))
	assert.ErrorContains(t, err, "connection refused")

	cands, err := src.FetchCandidates(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, cands)
}

func TestMediaSources_Entitlement(t *testing.T) {
	media := mocks.NewMockMediaStore()
	media.AddVideo(&domain.TrainingVideo{ID: "v1", Title: "CTG Grundlagen", Platform: "vimeo"})
	media.AddPresentation(&domain.TrainingPresentation{ID: "p1", Title: "CTG Folien", MimeType: "application/pdf", FileName: "ctg.pdf"})
	resolver := NewVisibilityResolver()
	videos := NewVideoSource(media, resolver)
	decks := NewPresentationSource(media, resolver)
	ctx := context.Background()

	cands, err := videos.FetchCandidates(ctx, memberCaller(personAnna))
	require.NoError(t, err)
	assert.Empty(t, cands)
	cands, err = decks.FetchCandidates(ctx, memberCaller(personAnna))
	require.NoError(t, err)
	assert.Empty(t, cands)
	assert.Zero(t, media.Calls(), "store must not be queried without entitlement")

	entitled := memberCaller(personAnna, domain.CapabilityTrainingAccess)
	cands, err = videos.FetchCandidates(ctx, entitled)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "vimeo", cands[0].Metadata.Platform)
	assert.Equal(t, "/training/videos/v1", cands[0].URL)

	cands, err = decks.FetchCandidates(ctx, adminCaller())
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "application/pdf", cands[0].Metadata.MimeType)
}

func TestMediaSources_Error(t *testing.T) {
	media := mocks.NewMockMediaStore()
	media.Err = errors.New("timeout")
	entitled := memberCaller(personAnna, domain.CapabilityTrainingAccess)

	_, err := NewVideoSource(media, NewVisibilityResolver()).FetchCandidates(context.Background(), entitled)
	assert.Error(t, err)
	_, err = NewPresentationSource(media, NewVisibilityResolver()).FetchCandidates(context.Background(), entitled)
	assert.Error(t, err)
}

func TestPersonSource_PrivateDataNeverSearchable(t *testing.T) {
	store := mocks.NewMockPersonStore(testPeople()...)
	cands, err := NewPersonSource(store, NewVisibilityResolver()).FetchCandidates(context.Background(), adminCaller())
	require.NoError(t, err)
	require.Len(t, cands, 2, "inactive people are not candidates")

	for _, c := range cands {
		text := c.Title + " " + c.KeywordText() + " " + c.Body
		assert.NotContains(t, text, c.Person.PrivatePhone)
		assert.NotContains(t, text, c.Person.PrivateEmail)
	}

	anna := cands[0]
	if anna.ID != personAnna {
		anna = cands[1]
	}
	assert.Equal(t, "Dr. Anna Schmidt", anna.Title)
	assert.Equal(t, []string{"senior_physician", "Oberärztin", "Geburtshilfe"}, anna.Keywords)
	assert.True(t, strings.Contains(anna.Body, "anna.schmidt@klinik.example"))
	assert.Equal(t, domain.RoleGroupSeniorPhysician, anna.Metadata.RoleGroup)
}

func TestNewCandidateSources_Order(t *testing.T) {
	sources := NewCandidateSources(mocks.NewMockProcedureStore(), mocks.NewMockMediaStore(), mocks.NewMockPersonStore(), NewVisibilityResolver())

	var types []domain.EntityType
	for _, s := range sources {
		types = append(types, s.Type())
	}
	assert.Equal(t, domain.AllEntityTypes(), types)
}
