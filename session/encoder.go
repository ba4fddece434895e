package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	tokenFormatVersionCurrent = 1
)

const maxTokenEntries = 255

// Encode serializes a token into the versioned binary store format.
func Encode(t *Token) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(tokenFormatVersionCurrent)

	if len(t.Username) > 255 {
		return nil, errors.New("username too long")
	}
	buf.WriteByte(byte(len(t.Username)))
	buf.WriteString(t.Username)

	if len(t.UserID) > 255 {
		return nil, errors.New("userID too long")
	}
	buf.WriteByte(byte(len(t.UserID)))
	buf.WriteString(t.UserID)

	if err := binary.Write(&buf, binary.BigEndian, t.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, t.ExpiresAt); err != nil {
		return nil, err
	}

	if len(t.Entries) > maxTokenEntries {
		return nil, errors.New("too many cookie entries")
	}
	buf.WriteByte(byte(len(t.Entries)))
	for _, e := range t.Entries {
		if len(e.Name) > 65535 || len(e.Value) > 65535 {
			return nil, errors.New("cookie entry too long")
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(e.Name))); err != nil {
			return nil, err
		}
		buf.WriteString(e.Name)
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(e.Value))); err != nil {
			return nil, err
		}
		buf.WriteString(e.Value)
	}

	return buf.Bytes(), nil
}

// Decode parses the versioned binary store format back into a token.
func Decode(data []byte) (*Token, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != tokenFormatVersionCurrent {
		return nil, errors.New("invalid token version")
	}

	t := &Token{}

	userLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	username := make([]byte, userLen)
	if _, err := io.ReadFull(reader, username); err != nil {
		return nil, err
	}
	t.Username = string(username)

	idLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	userID := make([]byte, idLen)
	if _, err := io.ReadFull(reader, userID); err != nil {
		return nil, err
	}
	t.UserID = string(userID)

	if err := binary.Read(reader, binary.BigEndian, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &t.ExpiresAt); err != nil {
		return nil, err
	}

	count, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		t.Entries = make([]Entry, 0, count)
	}
	for i := 0; i < int(count); i++ {
		var nameLen uint16
		if err := binary.Read(reader, binary.BigEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(reader, name); err != nil {
			return nil, err
		}

		var valueLen uint16
		if err := binary.Read(reader, binary.BigEndian, &valueLen); err != nil {
			return nil, err
		}
		value := make([]byte, valueLen)
		if _, err := io.ReadFull(reader, value); err != nil {
			return nil, err
		}

		t.Entries = append(t.Entries, Entry{Name: string(name), Value: string(value)})
	}

	return t, nil
}
