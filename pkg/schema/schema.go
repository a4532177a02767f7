package schema

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/patrickhuang888/goorc/orc/api"
	"github.com/patrickhuang888/goorc/pb/pb"
)

// Kind enumerates the semantic column types the fixture datasets are declared
// against. The vocabulary mirrors what the ORC type system can represent.
type Kind int

const (
	Boolean Kind = iota
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Decimal
	Binary
	String
	Date
	Timestamp
	Struct
	List
	Map
)

// Type is a semantic column type. Only the fields relevant for the Kind are
// set: Precision/Scale for Decimal, TimeZone for Timestamp, Fields for
// Struct, Elem for List, Key/Value for Map.
type Type struct {
	Kind      Kind
	Precision int32
	Scale     int32
	TimeZone  string
	Fields    []Column
	Elem      *Type
	Key       *Type
	Value     *Type
}

// Column is a named column in declaration order.
type Column struct {
	Name string
	Type Type
}

// Schema is an ordered list of columns. Every column is nullable.
type Schema struct {
	Columns []Column
}

func New(cols ...Column) Schema {
	return Schema{Columns: cols}
}

func Col(name string, t Type) Column {
	return Column{Name: name, Type: t}
}

func Bool() Type { return Type{Kind: Boolean} }

func I8() Type { return Type{Kind: Int8} }

func I16() Type { return Type{Kind: Int16} }

func I32() Type { return Type{Kind: Int32} }

func I64() Type { return Type{Kind: Int64} }

func F32() Type { return Type{Kind: Float32} }

func F64() Type { return Type{Kind: Float64} }

func Bytes() Type { return Type{Kind: Binary} }

func Utf8() Type { return Type{Kind: String} }

func Date32() Type { return Type{Kind: Date} }

func Dec(p, s int32) Type {
	return Type{Kind: Decimal, Precision: p, Scale: s}
}

// Ts returns a timestamp without time zone.
func Ts() Type { return Type{Kind: Timestamp} }

// TsTz returns a timestamp in the given time zone, typically "UTC".
func TsTz(tz string) Type { return Type{Kind: Timestamp, TimeZone: tz} }

func StructOf(fields ...Column) Type {
	return Type{Kind: Struct, Fields: fields}
}

func ListOf(elem Type) Type {
	return Type{Kind: List, Elem: &elem}
}

func MapOf(key, value Type) Type {
	return Type{Kind: Map, Key: &key, Value: &value}
}

// Arrow converts the schema to its arrow equivalent. All fields are nullable,
// matching the data model where null is valid in every column.
func (s Schema) Arrow() (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(s.Columns))

	for i, c := range s.Columns {
		dt, err := c.Type.Arrow()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}

		fields[i] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}

	return arrow.NewSchema(fields, nil), nil
}

func (t Type) Arrow() (arrow.DataType, error) {
	switch t.Kind {
	case Boolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case Decimal:
		return &arrow.Decimal128Type{Precision: t.Precision, Scale: t.Scale}, nil
	case Binary:
		return arrow.BinaryTypes.Binary, nil
	case String:
		return arrow.BinaryTypes.String, nil
	case Date:
		return arrow.FixedWidthTypes.Date32, nil
	case Timestamp:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: t.TimeZone}, nil
	case Struct:
		fields := make([]arrow.Field, len(t.Fields))
		for i, f := range t.Fields {
			dt, err := f.Type.Arrow()
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			fields[i] = arrow.Field{Name: f.Name, Type: dt, Nullable: true}
		}
		return arrow.StructOf(fields...), nil
	case List:
		elem, err := t.Elem.Arrow()
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(elem), nil
	case Map:
		key, err := t.Key.Arrow()
		if err != nil {
			return nil, err
		}
		value, err := t.Value.Arrow()
		if err != nil {
			return nil, err
		}
		return arrow.MapOf(key, value), nil
	}

	return nil, fmt.Errorf("unsupported kind: %d", t.Kind)
}

// ORC converts the schema to a goorc type description. The root is always a
// struct, as required by the file format. Column encodings are fixed per
// kind; the type description does not carry decimal precision or scale, they
// travel with the values.
func (s Schema) ORC() (*api.TypeDescription, error) {
	root := &api.TypeDescription{Kind: pb.Type_STRUCT, Encoding: pb.ColumnEncoding_DIRECT}

	for _, c := range s.Columns {
		td, err := c.Type.ORC()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}

		root.ChildrenNames = append(root.ChildrenNames, c.Name)
		root.Children = append(root.Children, td)
	}

	return root, nil
}

func (t Type) ORC() (*api.TypeDescription, error) {
	switch t.Kind {
	case Boolean:
		return &api.TypeDescription{Kind: pb.Type_BOOLEAN, Encoding: pb.ColumnEncoding_DIRECT}, nil
	case Int8:
		return &api.TypeDescription{Kind: pb.Type_BYTE, Encoding: pb.ColumnEncoding_DIRECT}, nil
	case Int16:
		return &api.TypeDescription{Kind: pb.Type_SHORT, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Int32:
		return &api.TypeDescription{Kind: pb.Type_INT, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Int64:
		return &api.TypeDescription{Kind: pb.Type_LONG, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Float32:
		return &api.TypeDescription{Kind: pb.Type_FLOAT, Encoding: pb.ColumnEncoding_DIRECT}, nil
	case Float64:
		return &api.TypeDescription{Kind: pb.Type_DOUBLE, Encoding: pb.ColumnEncoding_DIRECT}, nil
	case Decimal:
		return &api.TypeDescription{Kind: pb.Type_DECIMAL, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Binary:
		return &api.TypeDescription{Kind: pb.Type_BINARY, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case String:
		return &api.TypeDescription{Kind: pb.Type_STRING, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Date:
		return &api.TypeDescription{Kind: pb.Type_DATE, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Timestamp:
		return &api.TypeDescription{Kind: pb.Type_TIMESTAMP, Encoding: pb.ColumnEncoding_DIRECT_V2}, nil
	case Struct:
		td := &api.TypeDescription{Kind: pb.Type_STRUCT, Encoding: pb.ColumnEncoding_DIRECT}
		for _, f := range t.Fields {
			child, err := f.Type.ORC()
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			td.ChildrenNames = append(td.ChildrenNames, f.Name)
			td.Children = append(td.Children, child)
		}
		return td, nil
	case List:
		elem, err := t.Elem.ORC()
		if err != nil {
			return nil, err
		}
		return &api.TypeDescription{
			Kind:     pb.Type_LIST,
			Encoding: pb.ColumnEncoding_DIRECT_V2,
			Children: []*api.TypeDescription{elem},
		}, nil
	case Map:
		key, err := t.Key.ORC()
		if err != nil {
			return nil, err
		}
		value, err := t.Value.ORC()
		if err != nil {
			return nil, err
		}
		return &api.TypeDescription{
			Kind:     pb.Type_MAP,
			Encoding: pb.ColumnEncoding_DIRECT_V2,
			Children: []*api.TypeDescription{key, value},
		}, nil
	}

	return nil, fmt.Errorf("unsupported kind: %d", t.Kind)
}

// FromORC reconstructs a schema from the type description of an existing ORC
// file. The root must be a struct. Decimal columns come back as
// decimal(38,0) because the type description carries neither precision nor
// scale; callers that decode values can refine the scale from them.
func FromORC(td *api.TypeDescription) (Schema, error) {
	if td.Kind != pb.Type_STRUCT {
		return Schema{}, fmt.Errorf("root data type is %s, not struct", td.Kind)
	}

	s := Schema{}

	for i, child := range td.Children {
		t, err := typeFromORC(child)
		if err != nil {
			return Schema{}, fmt.Errorf("column %s: %w", td.ChildrenNames[i], err)
		}

		s.Columns = append(s.Columns, Column{Name: td.ChildrenNames[i], Type: t})
	}

	return s, nil
}

func typeFromORC(td *api.TypeDescription) (Type, error) {
	switch td.Kind {
	case pb.Type_BOOLEAN:
		return Bool(), nil
	case pb.Type_BYTE:
		return I8(), nil
	case pb.Type_SHORT:
		return I16(), nil
	case pb.Type_INT:
		return I32(), nil
	case pb.Type_LONG:
		return I64(), nil
	case pb.Type_FLOAT:
		return F32(), nil
	case pb.Type_DOUBLE:
		return F64(), nil
	case pb.Type_DECIMAL:
		return Dec(38, 0), nil
	case pb.Type_BINARY:
		return Bytes(), nil
	case pb.Type_STRING, pb.Type_VARCHAR, pb.Type_CHAR:
		return Utf8(), nil
	case pb.Type_DATE:
		return Date32(), nil
	case pb.Type_TIMESTAMP:
		return Ts(), nil
	case pb.Type_STRUCT:
		fields := make([]Column, len(td.Children))
		for i, child := range td.Children {
			t, err := typeFromORC(child)
			if err != nil {
				return Type{}, err
			}
			fields[i] = Column{Name: td.ChildrenNames[i], Type: t}
		}
		return StructOf(fields...), nil
	case pb.Type_LIST:
		elem, err := typeFromORC(td.Children[0])
		if err != nil {
			return Type{}, err
		}
		return ListOf(elem), nil
	case pb.Type_MAP:
		key, err := typeFromORC(td.Children[0])
		if err != nil {
			return Type{}, err
		}
		value, err := typeFromORC(td.Children[1])
		if err != nil {
			return Type{}, err
		}
		return MapOf(key, value), nil
	}

	return Type{}, fmt.Errorf("unsupported orc kind: %s", td.Kind)
}

// String renders the schema in the ORC type notation, e.g.
// struct<a:float,b:boolean>.
func (s Schema) String() string {
	var sb strings.Builder

	sb.WriteString("struct<")
	for i, c := range s.Columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.Name)
		sb.WriteByte(':')
		sb.WriteString(c.Type.String())
	}
	sb.WriteByte('>')

	return sb.String()
}

func (t Type) String() string {
	switch t.Kind {
	case Boolean:
		return "boolean"
	case Int8:
		return "tinyint"
	case Int16:
		return "smallint"
	case Int32:
		return "int"
	case Int64:
		return "bigint"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Decimal:
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	case Binary:
		return "binary"
	case String:
		return "string"
	case Date:
		return "date"
	case Timestamp:
		return "timestamp"
	case Struct:
		var sb strings.Builder
		sb.WriteString("struct<")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			sb.WriteString(f.Type.String())
		}
		sb.WriteByte('>')
		return sb.String()
	case List:
		return "array<" + t.Elem.String() + ">"
	case Map:
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	}

	return "unknown"
}
