package generation

import (
	"github.com/cloudwego/eino/schema"
)

// systemPrompt 约束模型只输出一个自包含的 HTML 文件
const systemPrompt = "ONLY USE HTML, CSS AND JAVASCRIPT. If you want to use ICON make sure to import the library first. " +
	"Try to create the best UI possible by using only HTML, CSS and JAVASCRIPT. " +
	"Use as much as you can TailwindCSS for the CSS, if you can't do something with TailwindCSS, then use custom CSS " +
	"(make sure to import <script src=\"https://cdn.tailwindcss.com\"></script> in the head). " +
	"Also, try to elaborate as much as you can, to create something unique. " +
	"ALWAYS GIVE THE RESPONSE INTO A SINGLE HTML FILE"

// currentCodePrefix 将既有文档包装为模型上下文
const currentCodePrefix = "The current code is: "

// BuildMessages 构建模型会话消息列表
// 顺序：系统指令 → 上一轮提示词（可选）→ 既有文档（可选）→ 本轮提示词。
func BuildMessages(req *Request) []*schema.Message {
	msgs := make([]*schema.Message, 0, 4)
	msgs = append(msgs, schema.SystemMessage(systemPrompt))

	if req.PreviousPrompt != "" {
		msgs = append(msgs, schema.UserMessage(req.PreviousPrompt))
	}
	if req.ExistingHTML != "" {
		msgs = append(msgs, schema.AssistantMessage(currentCodePrefix+req.ExistingHTML, nil))
	}

	msgs = append(msgs, schema.UserMessage(req.Prompt))
	return msgs
}
