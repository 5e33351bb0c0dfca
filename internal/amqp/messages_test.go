package amqp

import "testing"

func TestDatasetChangedMessageRoundTrip(t *testing.T) {
	msg := NewDatasetChangedMessage("real", 42, 7)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := DatasetChangedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Mode != "real" || got.Revision != 42 || got.Transactions != 7 {
		t.Fatalf("unexpected message %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp not carried")
	}
}

func TestDatasetChangedMessageFromJSONInvalid(t *testing.T) {
	if _, err := DatasetChangedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
