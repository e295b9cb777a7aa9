package store

import "encoding/json"

// The manifest is the durable document describing a session's structure and
// audio file references. Writes always emit snake_case; reads accept both
// snake_case and camelCase so manifests written by older producers keep
// loading. The duality is normalized here, at the decode boundary, and
// nowhere else.

type manifestDoc struct {
	Title    string            `json:"title"`
	RawText  string            `json:"raw_text"`
	Segments []manifestSegment `json:"segments"`
}

type manifestSegment struct {
	ID          int             `json:"id"`
	French      string          `json:"french"`
	English     string          `json:"english"`
	AudioFrFile string          `json:"audio_fr_file"`
	AudioEnFile string          `json:"audio_en_file"`
	KeyVocab    []manifestVocab `json:"key_vocab"`
}

type manifestVocab struct {
	ID          string `json:"id"`
	French      string `json:"french"`
	English     string `json:"english"`
	AudioFrFile string `json:"audio_fr_file"`
	AudioEnFile string `json:"audio_en_file"`
}

func (d *manifestDoc) UnmarshalJSON(data []byte) error {
	var aux struct {
		Title        string            `json:"title"`
		RawText      string            `json:"raw_text"`
		RawTextCamel string            `json:"rawText"`
		Segments     []manifestSegment `json:"segments"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Title = aux.Title
	d.RawText = firstNonEmpty(aux.RawText, aux.RawTextCamel)
	d.Segments = aux.Segments
	return nil
}

func (m *manifestSegment) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID               int             `json:"id"`
		French           string          `json:"french"`
		English          string          `json:"english"`
		AudioFrFile      string          `json:"audio_fr_file"`
		AudioFrFileCamel string          `json:"audioFrFile"`
		AudioEnFile      string          `json:"audio_en_file"`
		AudioEnFileCamel string          `json:"audioEnFile"`
		KeyVocab         []manifestVocab `json:"key_vocab"`
		KeyVocabCamel    []manifestVocab `json:"keyVocab"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.ID = aux.ID
	m.French = aux.French
	m.English = aux.English
	m.AudioFrFile = firstNonEmpty(aux.AudioFrFile, aux.AudioFrFileCamel)
	m.AudioEnFile = firstNonEmpty(aux.AudioEnFile, aux.AudioEnFileCamel)
	m.KeyVocab = aux.KeyVocab
	if m.KeyVocab == nil {
		m.KeyVocab = aux.KeyVocabCamel
	}
	return nil
}

func (v *manifestVocab) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID               string `json:"id"`
		French           string `json:"french"`
		English          string `json:"english"`
		AudioFrFile      string `json:"audio_fr_file"`
		AudioFrFileCamel string `json:"audioFrFile"`
		AudioEnFile      string `json:"audio_en_file"`
		AudioEnFileCamel string `json:"audioEnFile"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.ID = aux.ID
	v.French = aux.French
	v.English = aux.English
	v.AudioFrFile = firstNonEmpty(aux.AudioFrFile, aux.AudioFrFileCamel)
	v.AudioEnFile = firstNonEmpty(aux.AudioEnFile, aux.AudioEnFileCamel)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
