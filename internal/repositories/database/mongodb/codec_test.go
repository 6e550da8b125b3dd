package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type amountDoc struct {
	Amount decimal.Decimal `bson:"amount"`
}

func TestDecimalCodec_StoresDecimal128(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, amountDoc{Amount: decimal.RequireFromString("1234.56")})
	require.NoError(t, err)

	val := bson.Raw(raw).Lookup("amount")
	assert.Equal(t, bsontype.Decimal128, val.Type)
	assert.Equal(t, "1234.56", val.Decimal128().String())
}

func TestDecimalCodec_RoundTripKeepsPrecision(t *testing.T) {
	reg := NewRegistry()
	in := amountDoc{Amount: decimal.RequireFromString("0.1")}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	var out amountDoc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.Amount.Equal(out.Amount), "got %s", out.Amount)
}

func TestDecimalCodec_DecodesLegacyNumericTypes(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		doc  bson.D
		want string
	}{
		{"double", bson.D{{Key: "amount", Value: 12.5}}, "12.5"},
		{"int32", bson.D{{Key: "amount", Value: int32(7)}}, "7"},
		{"int64", bson.D{{Key: "amount", Value: int64(900)}}, "900"},
		{"string", bson.D{{Key: "amount", Value: "42.42"}}, "42.42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var out amountDoc
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(out.Amount), "got %s", out.Amount)
		})
	}
}

func TestDecimalCodec_RejectsBoolean(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "amount", Value: true}})
	require.NoError(t, err)

	var out amountDoc
	assert.Error(t, bson.UnmarshalWithRegistry(NewRegistry(), raw, &out))
}
