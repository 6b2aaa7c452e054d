package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name,address,city,country,postcode,state,categories,menu item,item value,currency,item description\n"

func TestRead(t *testing.T) {
	data := header +
		`Luigi's,1 Main St,Paris,France,75001,,"Pizza Places,Italian Restaurant","Pizza, Margherita",10.5,EUR,"tomato and mozzarella"` + "\n" +
		`"Joe \"The Slice\"",2 Elm St,Austin,US,78701,TX,Pizza,Pepperoni,12,USD,` + "\n"

	tbl, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	first := tbl.Rows[0]
	assert.Equal(t, "Luigi's", first.Get(ColName))
	assert.Equal(t, "", first.Get(ColState))
	assert.Equal(t, "Margherita Pizza", first.Get(ColMenuItem))
	assert.Equal(t, "Pizza Places,Italian Restaurant", first.Get(ColCategories))

	second := tbl.Rows[1]
	assert.Equal(t, `Joe "The Slice"`, second.Get(ColName))
	assert.Equal(t, "", second.Get(ColItemDescription))

	assert.Equal(t, []string{"Paris", "Austin"}, tbl.Column(ColCity))
}

func TestRead_ShortRecordsPadWithEmpty(t *testing.T) {
	tbl, err := Read(strings.NewReader(header + "Solo,addr,Rome\n"))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Rome", tbl.Rows[0].Get(ColCity))
	assert.True(t, IsMissing(tbl.Rows[0].Get(ColCountry)))
}

func TestRead_MissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("name,city\nA,B\n"))
	require.Error(t, err)
	assert.True(t, IsMissingColumns(err))

	var mc *MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Contains(t, mc.Missing, ColCountry)
	assert.NotContains(t, mc.Missing, ColName)
	assert.Equal(t, RequiredColumns, mc.Required)
	assert.Contains(t, err.Error(), "item description")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.True(t, IsMissingColumns(err))
}

func TestRead_ByteOrderMark(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeff" + header + "A,b,c,d,e,f,g,h,1,USD,i\n"))
	require.NoError(t, err)
	assert.Equal(t, "A", tbl.Rows[0].Get(ColName))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"A,b,c,d,e,f,g,h,1,USD,i\n"), 0o644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestValidateColumns(t *testing.T) {
	assert.NoError(t, ValidateColumns(RequiredColumns))
	assert.NoError(t, ValidateColumns(append([]string{"extra"}, RequiredColumns...)))
	assert.Error(t, ValidateColumns(RequiredColumns[1:]))
}
