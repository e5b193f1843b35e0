package upload

import "testing"

func TestValidateAudioBySniff(t *testing.T) {
	mp3WithID3 := append([]byte("ID3"), make([]byte, 64)...)

	tests := []struct {
		name     string
		filename string
		head     []byte
		wantErr  bool
	}{
		{name: "mp3 with id3 tag", filename: "histoire.mp3", head: mp3WithID3, wantErr: false},
		{name: "raw mp3 frames sniff as octet-stream", filename: "histoire.mp3", head: []byte{0xFF, 0xFB, 0x90, 0x00}, wantErr: false},
		{name: "wav header", filename: "histoire.wav", head: []byte("RIFF\x00\x00\x00\x00WAVEfmt "), wantErr: false},
		{name: "ogg header", filename: "histoire.ogg", head: []byte("OggS\x00\x00\x00\x00"), wantErr: false},
		{name: "disallowed extension", filename: "histoire.exe", head: []byte{0x4D, 0x5A}, wantErr: true},
		{name: "html content behind audio extension", filename: "histoire.mp3", head: []byte("<!DOCTYPE html><html>"), wantErr: true},
		{name: "no extension", filename: "histoire", head: mp3WithID3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAudioBySniff(tt.filename, tt.head)
			if tt.wantErr && err == nil {
				t.Fatalf("expected %s to be rejected", tt.name)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected %s to be accepted, got %v", tt.name, err)
			}
		})
	}
}
