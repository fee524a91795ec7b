package nbt

import "strconv"

// Type identifies the payload layout of a tag.
type Type byte

const (
	TagEnd Type = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var typeNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

func (t Type) Valid() bool {
	return t <= TagLongArray
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return "TAG_Unknown(" + strconv.Itoa(int(t)) + ")"
}

// minSize is the smallest number of payload bytes a value of this type can
// occupy. It bounds list and array counts against the remaining input.
func (t Type) minSize() int {
	switch t {
	case TagByte, TagCompound:
		return 1
	case TagShort, TagString:
		return 2
	case TagInt, TagFloat, TagByteArray, TagIntArray, TagLongArray:
		return 4
	case TagList:
		return 5
	case TagLong, TagDouble:
		return 8
	}
	return 0
}

// Tag is one decoded node. Value holds one of int8, int16, int32, int64,
// float32, float64, string, []Tag (List and Compound), []int8, []int32 or
// []int64 depending on Type. Elem is only meaningful for lists.
type Tag struct {
	Name  string
	Type  Type
	Elem  Type
	Value interface{}
}

// Int returns the value of any integer tag widened to int64.
func (t Tag) Int() (int64, bool) {
	switch v := t.Value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// Float returns the value of a Float or Double tag widened to float64.
func (t Tag) Float() (float64, bool) {
	switch v := t.Value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Str returns the value of a String tag.
func (t Tag) Str() (string, bool) {
	s, ok := t.Value.(string)
	return s, ok
}

// Children returns the elements of a List or Compound, nil otherwise.
func (t Tag) Children() []Tag {
	if t.Type != TagList && t.Type != TagCompound {
		return nil
	}
	children, _ := t.Value.([]Tag)
	return children
}

// Find looks up a direct child by name.
func (t Tag) Find(name string) (Tag, error) {
	return Find(t.Children(), name)
}
