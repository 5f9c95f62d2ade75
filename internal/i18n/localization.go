// Package i18n holds localized UI text and locale negotiation.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Supported locales
const (
	Arabic  = "ar"
	English = "en"
)

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyHeroTitle          = "hero_title"
	KeyHeroSubtitle       = "hero_subtitle"
	KeyInputPlaceholder   = "input_placeholder"
	KeySubmit             = "submit"
	KeyAnalyzing          = "analyzing"
	KeySmartSummary       = "smart_summary"
	KeyDownloadNoMark     = "download_no_watermark"
	KeyCopyLink           = "copy_link"
	KeyShare              = "share"
	KeyRemove             = "remove"
	KeySources            = "sources"
	KeyNewVideo           = "new_video"
	KeyDisclaimer         = "disclaimer"
	KeyErrInvalidInput    = "err_invalid_input"
	KeyErrCredential      = "err_missing_credential"
	KeyErrAnalyzer        = "err_analyzer_failure"
	KeyErrQuota           = "err_quota"
	KeyErrMalformed       = "err_malformed_response"
	KeyErrBusy            = "err_busy"
	KeyErrSessionNotFound = "err_session_not_found"
	KeyErrRecordNotFound  = "err_record_not_found"
	KeyCopied             = "copied"
	KeyBestQuality        = "best_quality"
	KeyEmpty              = "empty"
)

// Localization manages UI text translations
type Localization struct {
	fallback string
	texts    map[string]map[string]string
	status   map[string][]string
	matcher  language.Matcher
	tags     []string
}

// NewLocalization creates a new localization manager. fallback is used when
// negotiation finds nothing better; unknown values fall back to Arabic.
func NewLocalization(fallback string) *Localization {
	l := &Localization{
		fallback: Arabic,
		texts:    make(map[string]map[string]string),
		status:   make(map[string][]string),
		tags:     []string{Arabic, English},
	}
	l.matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})
	l.initializeTexts()
	if _, ok := l.texts[fallback]; ok {
		l.fallback = fallback
	}
	return l
}

// Fallback is the locale used when nothing else matches.
func (l *Localization) Fallback() string { return l.fallback }

// Negotiate picks the supported locale that best matches an Accept-Language header.
func (l *Localization) Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.fallback
	}
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.fallback
	}
	return l.tags[idx]
}

// Text returns localized text for the given key
func (l *Localization) Text(locale, key string) string {
	if texts, ok := l.texts[locale]; ok {
		if text, found := texts[key]; found {
			return text
		}
	}
	if text, found := l.texts[l.fallback][key]; found {
		return text
	}
	return key
}

// StatusMessages returns the cosmetic messages cycled while a call is pending.
func (l *Localization) StatusMessages(locale string) []string {
	if msgs, ok := l.status[locale]; ok {
		return append([]string(nil), msgs...)
	}
	return append([]string(nil), l.status[l.fallback]...)
}

// Dir is the text direction for locale.
func (l *Localization) Dir(locale string) string {
	if locale == Arabic {
		return "rtl"
	}
	return "ltr"
}

// LanguageName is the English name of a locale, e.g. "Arabic" for "ar".
func LanguageName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "Arabic"
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return "Arabic"
}

func (l *Localization) initializeTexts() {
	l.texts[Arabic] = map[string]string{
		KeyAppTitle:           "فيديو ماستر",
		KeyHeroTitle:          "تحميل الفيديوهات بذكاء",
		KeyHeroSubtitle:       "قم بنسخ الرابط من تيك توك، إنستقرام أو يوتيوب، وسيقوم نظامنا المدعوم بالذكاء الاصطناعي بتحليل الفيديو وتجهيزه للتحميل بدون علامة مائية.",
		KeyInputPlaceholder:   "ضع رابط الفيديو هنا (تيك توك، إنستقرام...)",
		KeySubmit:             "تحميل الآن",
		KeyAnalyzing:          "جاري التحليل...",
		KeySmartSummary:       "ملخص ذكي:",
		KeyDownloadNoMark:     "تحميل بدون علامة مائية",
		KeyCopyLink:           "نسخ الرابط المباشر",
		KeyShare:              "مشاركة",
		KeyRemove:             "حذف",
		KeySources:            "المصادر",
		KeyNewVideo:           "فيديو جديد",
		KeyDisclaimer:         "تطبيق فيديو ماستر هو أداة تعليمية وتجريبية لتحليل المحتوى المرئي باستخدام تقنيات الذكاء الاصطناعي. نحن نشجع على احترام حقوق الملكية الفكرية.",
		KeyErrInvalidInput:    "الرابط غير صالح. تأكد من أنه يبدأ بـ http:// أو https:// وحاول مرة أخرى.",
		KeyErrCredential:      "خدمة التحليل غير مهيأة حالياً. يرجى المحاولة لاحقاً.",
		KeyErrAnalyzer:        "عذراً، حدث خطأ أثناء الاتصال بخدمة التحليل. تحقق من الاتصال وحاول مرة أخرى.",
		KeyErrQuota:           "الخدمة مشغولة حالياً. انتظر قليلاً ثم حاول مرة أخرى.",
		KeyErrMalformed:       "عذراً، تعذر فهم نتيجة التحليل. حاول مرة أخرى.",
		KeyErrBusy:            "يوجد تحليل قيد التنفيذ بالفعل.",
		KeyErrSessionNotFound: "انتهت الجلسة. أعد تحميل الصفحة.",
		KeyErrRecordNotFound:  "لم يتم العثور على هذا الفيديو.",
		KeyCopied:             "تم النسخ!",
		KeyBestQuality:        "أفضل جودة:",
		KeyEmpty:              "لم تقم بتحليل أي فيديو بعد.",
	}
	l.texts[English] = map[string]string{
		KeyAppTitle:           "Video Master",
		KeyHeroTitle:          "Smart video downloads",
		KeyHeroSubtitle:       "Paste a link from TikTok, Instagram or YouTube and our AI-powered system will analyze the video and prepare it for download.",
		KeyInputPlaceholder:   "Paste the video link here (TikTok, Instagram...)",
		KeySubmit:             "Download now",
		KeyAnalyzing:          "Analyzing...",
		KeySmartSummary:       "Smart summary:",
		KeyDownloadNoMark:     "Download without watermark",
		KeyCopyLink:           "Copy direct link",
		KeyShare:              "Share",
		KeyRemove:             "Remove",
		KeySources:            "Sources",
		KeyNewVideo:           "New video",
		KeyDisclaimer:         "Video Master is an educational demo for analyzing visual content with AI. Please respect intellectual property rights.",
		KeyErrInvalidInput:    "That link is not valid. Make sure it starts with http:// or https:// and try again.",
		KeyErrCredential:      "The analysis service is not configured right now. Please try again later.",
		KeyErrAnalyzer:        "Sorry, the analysis service could not be reached. Check your connection and try again.",
		KeyErrQuota:           "The service is busy right now. Wait a moment and try again.",
		KeyErrMalformed:       "Sorry, the analysis result could not be understood. Please try again.",
		KeyErrBusy:            "An analysis is already in progress.",
		KeyErrSessionNotFound: "Your session has expired. Reload the page.",
		KeyErrRecordNotFound:  "That video could not be found.",
		KeyCopied:             "Copied!",
		KeyBestQuality:        "Best quality:",
		KeyEmpty:              "You have not analyzed any video yet.",
	}
	l.status[Arabic] = []string{
		"جاري تحليل الرابط...",
		"التعرف على المنصة...",
		"البحث عن معلومات الفيديو...",
		"إنشاء الملخص الذكي...",
		"تجهيز تعليمات التحميل...",
	}
	l.status[English] = []string{
		"Analyzing the link...",
		"Identifying the platform...",
		"Looking up video details...",
		"Writing the smart summary...",
		"Preparing download instructions...",
	}
}
