package extractor

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind 추출기의 판매처 변형입니다.
type Kind int

const (
	KindGeneric Kind = iota
	KindThaiWatsadu
	KindHomePro
	KindBoonthavorn
	KindMegaHome
	KindDoHome
	KindGlobalHouse
)

type kindInfo struct {
	name        string
	displayName string
	code        string
	domain      string
}

var kindInfos = [...]kindInfo{
	KindGeneric:     {name: "generic"},
	KindThaiWatsadu: {name: "thaiwatsadu", displayName: "Thai Watsadu", code: "twd", domain: "thaiwatsadu.com"},
	KindHomePro:     {name: "homepro", displayName: "HomePro", code: "hp", domain: "homepro.co.th"},
	KindBoonthavorn: {name: "boonthavorn", displayName: "Boonthavorn", code: "btv", domain: "boonthavorn.com"},
	KindMegaHome:    {name: "megahome", displayName: "Mega Home", code: "mgh", domain: "megahome.co.th"},
	KindDoHome:      {name: "dohome", displayName: "DoHome", code: "dh", domain: "dohome.co.th"},
	KindGlobalHouse: {name: "globalhouse", displayName: "Global House", code: "gbh", domain: "globalhouse.co.th"},
}

func (k Kind) info() kindInfo {
	if k < 0 || int(k) >= len(kindInfos) {
		return kindInfo{name: "unknown"}
	}
	return kindInfos[k]
}

func (k Kind) String() string { return k.info().name }

// DisplayName 판매처의 표시 이름입니다. 범용 변형은 빈 문자열입니다.
func (k Kind) DisplayName() string { return k.info().displayName }

// Code 저장소에서 사용하는 판매처 코드(twd, hp, btv, mgh, dh, gbh)입니다. 범용 변형은 빈 문자열입니다.
func (k Kind) Code() string { return k.info().code }

// Domain 판매처를 식별하는 도메인입니다. 범용 변형은 빈 문자열입니다.
func (k Kind) Domain() string { return k.info().domain }

// Kinds 판매처별 변형 목록을 반환합니다. 범용 변형은 포함하지 않습니다.
func Kinds() []Kind {
	return []Kind{KindThaiWatsadu, KindHomePro, KindBoonthavorn, KindMegaHome, KindDoHome, KindGlobalHouse}
}

// KindByCode 판매처 코드에 해당하는 변형을 찾습니다.
func KindByCode(code string) (Kind, bool) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.Code(), code) {
			return k, true
		}
	}
	return KindGeneric, false
}

const unknownRetailer = "Unknown Retailer"

// retailerDomains 판매처 이름을 추론할 때 사용하는 도메인 부분 문자열과 표시 이름
var retailerDomains = []struct {
	pattern string
	name    string
}{
	{"advice.co.th", "Advice"},
	{"banana-it", "Banana IT"},
	{"dohome.co.th", "DoHome"},
	{"globalhouse.co.th", "Global House"},
	{"homepro.co.th", "HomePro"},
	{"jaymart.co.th", "Jaymart"},
	{"lazada.co.th", "Lazada"},
	{"megahome.co.th", "Mega Home"},
	{"powerbuy.co.th", "Power Buy"},
	{"shopee.co.th", "Shopee"},
	{"thaiwatsadu.com", "Thai Watsadu"},
}

// InferRetailer URL의 호스트로부터 판매처 이름을 추론합니다.
//
// 알려진 도메인이면 고정된 이름을, 아니면 호스트의 끝에서 두 번째 레이블을 Title Case로 바꾼 값을 반환합니다.
// URL이 비어 있거나 호스트가 없으면 "Unknown Retailer"입니다.
func InferRetailer(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return unknownRetailer
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return unknownRetailer
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, d := range retailerDomains {
		if strings.Contains(host, d.pattern) {
			return d.name
		}
	}

	labels := strings.Split(host, ".")
	if len(labels) >= 2 {
		return titleCase(labels[len(labels)-2])
	}
	return titleCase(host)
}

// titleCase cases.Caser는 고루틴 간에 공유할 수 없으므로 호출마다 새로 만듭니다.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
