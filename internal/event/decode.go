package event

import "encoding/json"

// DecodePayload returns the payload as T. Payloads published in-process are
// already typed; payloads read back from JSON (dead letters, the wire) are
// maps and get converted through a marshal round trip.
func DecodePayload[T any](payload any) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	if p, ok := payload.(*T); ok && p != nil {
		return *p, nil
	}

	var out T
	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
