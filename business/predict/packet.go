package predict

import "partyPredictor/domain"

// BuildPacket assembles one response element. Matrix keys are merged last
// and win over the prediction fields on collision.
func BuildPacket(handle string, desc domain.AlgorithmDescriptor, predicted string, matrix domain.ComparisonMatrix) domain.ResultPacket {
	features := make([]string, len(desc.FeatureColumns))
	copy(features, desc.FeatureColumns)

	packet := domain.ResultPacket{
		"handle":    handle,
		"algoname":  desc.DisplayName,
		"predicted": predicted,
		"features":  features,
	}
	for k, v := range matrix {
		packet[k] = v
	}
	return packet
}
