package deploy

import (
	"fmt"
	"strings"
)

// siteBaseURL 署名回链指向的站点
const siteBaseURL = "https://pagesmith.app"

// AttributionFragment 构造注入文档的署名片段
// 片段由 spaceID 确定性生成，混制时按字节精确剥离。
func AttributionFragment(spaceID string) string {
	return fmt.Sprintf(`<p style="border-radius: 8px; text-align: center; font-size: 12px; color: #fff; margin-top: 16px; position: fixed; left: 8px; bottom: 8px; z-index: 10; background: rgba(0, 0, 0, 0.8); padding: 4px 8px;">Made with <a href="%s" style="color: #fff; text-decoration: underline;" target="_blank">PageSmith</a> - <a href="%s/?remix=%s" style="color: #fff; text-decoration: underline;" target="_blank">🧬 Remix</a></p>`,
		siteBaseURL, siteBaseURL, spaceID)
}

// InjectAttribution 在文档的 </body> 前插入署名片段
// 没有 </body> 的文档原样返回。
func InjectAttribution(document, spaceID string) string {
	return strings.Replace(document, "</body>", AttributionFragment(spaceID)+"</body>", 1)
}

// StripAttribution 从文档中剥离恰好一处署名片段
func StripAttribution(document, spaceID string) string {
	return strings.Replace(document, AttributionFragment(spaceID), "", 1)
}
