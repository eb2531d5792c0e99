package writer

import "github.com/cinderdb/cinder/internal/record"

func encodeEntry(tstamp int64, key, value []byte) []byte {
	return record.Encode(record.DataFileEntry{Tstamp: tstamp, Key: key, Value: value})
}
