package sqlutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableConverters(t *testing.T) {
	assert.False(t, ToSqlString(nil).Valid)
	assert.Nil(t, FromSqlStringPtr(sql.NullString{}))
	logo := "/logos/lions.png"
	got := FromSqlStringPtr(ToSqlString(&logo))
	require.NotNil(t, got)
	assert.Equal(t, logo, *got)

	assert.False(t, ToNullUUID(nil).Valid)
	assert.Nil(t, FromNullUUID(uuid.NullUUID{}))
	id := uuid.New()
	assert.Equal(t, id, *FromNullUUID(ToNullUUID(&id)))

	assert.False(t, ToSqlTime(nil).Valid)
	assert.Nil(t, FromSqlTime(sql.NullTime{}))
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, now, *FromSqlTime(ToSqlTime(&now)))
}
