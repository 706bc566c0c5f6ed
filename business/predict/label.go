package predict

import "partyPredictor/domain"

// PartyLabel maps a model class id to a party. Only 1 means Republican;
// every other id, including ids >= 2 that no shipped model is known to emit,
// reports Democrat. Callers flag ids outside {0, 1}.
func PartyLabel(class int) string {
	if class == 1 {
		return domain.PartyRepublican
	}
	return domain.PartyDemocrat
}

func isExpectedClass(class int) bool {
	return class == 0 || class == 1
}
