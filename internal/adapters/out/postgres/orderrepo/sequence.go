package orderrepo

// orderSequence names the counter row of the order ids.
const orderSequence = "orders"

// SequenceDTO keeps the highest id ever stored under a name, so ids of
// deleted rows are not issued again.
type SequenceDTO struct {
	Name   string `gorm:"primaryKey"`
	LastID int64
}

// TableName specifies the database table name for id counters.
func (SequenceDTO) TableName() string {
	return "sequences"
}
